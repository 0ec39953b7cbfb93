package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// SetDraft records a local, not-yet-submitted value for one cell. Checkbox
// fields carry the literal strings "true"/"false".
func (uc *UseCases) SetDraft(ctx context.Context, recordID types.RecordID, fieldID types.FieldID, value string) error {
	if uc.content == nil {
		return ErrNotLoaded
	}
	if err := uc.repo.Drafts().Set(ctx, recordID, fieldID, value); err != nil {
		return err
	}
	uc.states[recordID] = types.RecordStateDraft
	return nil
}

// Draft returns the working draft for a record
func (uc *UseCases) Draft(ctx context.Context, recordID types.RecordID) (map[types.FieldID]string, error) {
	return uc.repo.Drafts().Get(ctx, recordID)
}

// ClearDraft discards the working draft for a record
func (uc *UseCases) ClearDraft(ctx context.Context, recordID types.RecordID) error {
	return uc.repo.Drafts().Clear(ctx, recordID)
}

// SelectRecord seeds the draft for a record from its current cell values.
// Seeding happens only at selection time, not eagerly for the whole
// collection: this bounds memory and avoids stale drafts.
func (uc *UseCases) SelectRecord(ctx context.Context, recordID types.RecordID) error {
	if uc.content == nil {
		return ErrNotLoaded
	}

	record, err := uc.repo.Records().Get(ctx, recordID)
	if err != nil {
		return goerr.Wrap(ErrRecordNotFound, "cannot select record", goerr.V(RecordIDKey, recordID))
	}

	seed := make(map[types.FieldID]string, len(uc.content.Fields))
	for i := range uc.content.Fields {
		field := &uc.content.Fields[i]
		cell := record.Cell(field.ID)
		if cell.IsAnswered() {
			seed[field.ID] = draftValueFor(cell.Value, cell.EmployeeID, uc.session.EmployeeID)
		} else {
			seed[field.ID] = field.Type.EmptyDraft()
		}
	}

	return uc.repo.Drafts().Replace(ctx, recordID, seed)
}

// draftValueFor extracts the current user's portion of a cell value. Cells
// answered collaboratively hold comma-joined employee IDs and values in
// matching positions; the seed picks the user's own slot, falling back to
// the first.
func draftValueFor(value string, cellEmployees types.EmployeeID, userID types.EmployeeID) string {
	employeeIDs := strings.Split(string(cellEmployees), ", ")
	values := strings.Split(value, ", ")
	for i, id := range employeeIDs {
		if types.EmployeeID(id) == userID && i < len(values) {
			return values[i]
		}
	}
	if len(values) > 0 {
		return values[0]
	}
	return ""
}
