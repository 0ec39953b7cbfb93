package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/utils/async"
)

// checkMutable gates every mutation on the loaded form's active flag. An
// inactive form is frozen: nothing reaches the network.
func (uc *UseCases) checkMutable() error {
	if uc.form == nil || uc.content == nil {
		return ErrNotLoaded
	}
	if !uc.form.Active {
		return goerr.Wrap(ErrFormInactive, "form is frozen", goerr.V("form_id", uc.form.ID))
	}
	return nil
}

// SubmitRecord submits the record's current draft. Only fields that are
// accessible, assigned to the user's level, and holding a real value are
// sent. Level-≥2 submissions must chain to an existing lower-level answer
// in the same record; a missing chain is a hard precondition failure.
// The submitted values are applied optimistically on acknowledgement and
// the draft is cleared; on failure nothing local changes.
func (uc *UseCases) SubmitRecord(ctx context.Context, recordID types.RecordID) error {
	if err := uc.checkMutable(); err != nil {
		return err
	}
	if !uc.content.CanFillCurrentLevel {
		return goerr.Wrap(ErrFillNotAllowed, "submit rejected", goerr.V(RecordIDKey, recordID))
	}
	if !uc.beginSubmit() {
		return goerr.Wrap(ErrSubmitInFlight, "submit rejected", goerr.V(RecordIDKey, recordID))
	}
	defer uc.endSubmit()

	record, err := uc.repo.Records().Get(ctx, recordID)
	if err != nil {
		return goerr.Wrap(ErrRecordNotFound, "cannot submit", goerr.V(RecordIDKey, recordID))
	}

	drafts, err := uc.repo.Drafts().Get(ctx, recordID)
	if err != nil {
		return err
	}

	userLevel := MaxLevel(uc.sessionLevels())
	link := uc.lowerLevelLink(record, userLevel)

	var entries []model.SubmitEntry
	var unlinked []string
	for i := range uc.content.Fields {
		field := &uc.content.Fields[i]
		value, ok := drafts[field.ID]
		if !ok || value == "" || value == types.PlaceholderValue {
			continue
		}
		if !uc.content.IsAccessible(field.ID) || !field.HasLevel(userLevel) {
			continue
		}

		entry := model.SubmitEntry{
			FieldID:    field.ID,
			Value:      value,
			RecordID:   recordID,
			EmployeeID: uc.session.EmployeeID,
		}
		if userLevel >= 2 {
			if link == "" {
				unlinked = append(unlinked, field.Label())
			} else {
				linked := link
				entry.LinkedResponseID = &linked
			}
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return goerr.Wrap(ErrNoValidResponses, "nothing to submit", goerr.V(RecordIDKey, recordID))
	}
	if len(unlinked) > 0 {
		return goerr.Wrap(ErrMissingLowerLink, "select valid lower level responses first",
			goerr.V(RecordIDKey, recordID), goerr.V(FieldsKey, unlinked))
	}

	uc.states[recordID] = types.RecordStatePending

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.client.SubmitResponse(callCtx, uc.form.ID, &model.SubmitRequest{
		RecordID:  recordID,
		Responses: entries,
	}); err != nil {
		uc.states[recordID] = types.RecordStateDraft
		return goerr.Wrap(err, "failed to submit responses", goerr.V(RecordIDKey, recordID))
	}

	// Optimistic apply: no refetch, the acknowledged values become the
	// record's cells directly
	for _, entry := range entries {
		field := uc.content.FieldByID(entry.FieldID)
		authoredLevel := userLevel
		if field != nil && !field.HasLevel(userLevel) {
			authoredLevel = field.PrimaryLevel()
		}
		cell := &model.ResponseCell{
			Value:        entry.Value,
			ResponseID:   recordID,
			EmployeeID:   uc.session.EmployeeID,
			EmployeeName: uc.session.EmployeeName,
			FieldLevel:   authoredLevel,
			IsServerResponse: record.Responses[entry.FieldID] != nil &&
				record.Responses[entry.FieldID].IsServerResponse,
		}
		if field != nil {
			cell.Question = field.Label()
		}
		if entry.LinkedResponseID != nil {
			cell.LinkedResponseID = *entry.LinkedResponseID
		}
		record.Responses[entry.FieldID] = cell
		record.AddLevel(authoredLevel)
	}
	if err := uc.repo.Records().Put(ctx, record); err != nil {
		return err
	}

	if err := uc.resetDraft(ctx, recordID); err != nil {
		return err
	}
	uc.states[recordID] = types.RecordStateConfirmed
	return nil
}

// lowerLevelLink finds the lower-level answer a level-≥2 submission chains
// to: the first field of the prior level holding a cell in this record
func (uc *UseCases) lowerLevelLink(record *model.Record, userLevel types.Level) string {
	if userLevel < 2 {
		return ""
	}
	lower := LowerLevelFieldIDs(uc.content.Fields, userLevel)
	for i := range uc.content.Fields {
		fieldID := uc.content.Fields[i].ID
		if !lower[fieldID] {
			continue
		}
		if cell := record.Responses[fieldID]; cell.IsAnswered() {
			return types.ResponseKey(cell.EmployeeID, fieldID)
		}
	}
	return ""
}

// resetDraft returns a record's draft to the per-type empty values
func (uc *UseCases) resetDraft(ctx context.Context, recordID types.RecordID) error {
	seed := make(map[types.FieldID]string, len(uc.content.Fields))
	for i := range uc.content.Fields {
		field := &uc.content.Fields[i]
		seed[field.ID] = field.Type.EmptyDraft()
	}
	return uc.repo.Drafts().Replace(ctx, recordID, seed)
}

// EditCell overwrites a single confirmed cell. Unlike a fresh submit, the
// local cell is only touched after the server acknowledges. The editor must
// hold the cell's level or own the form, and the field must be accessible.
func (uc *UseCases) EditCell(ctx context.Context, recordID types.RecordID, fieldID types.FieldID, newValue string) error {
	if err := uc.checkMutable(); err != nil {
		return err
	}
	if !uc.beginSubmit() {
		return goerr.Wrap(ErrSubmitInFlight, "edit rejected", goerr.V(RecordIDKey, recordID))
	}
	defer uc.endSubmit()

	record, err := uc.repo.Records().Get(ctx, recordID)
	if err != nil {
		return goerr.Wrap(ErrRecordNotFound, "cannot edit", goerr.V(RecordIDKey, recordID))
	}

	cell := record.Cell(fieldID)
	canEdit := (uc.session.IsOwner(uc.form) || hasLevel(uc.sessionLevels(), cell.FieldLevel)) &&
		uc.content.IsAccessible(fieldID)
	if !canEdit {
		return goerr.Wrap(ErrNotAuthorized, "cannot edit this cell",
			goerr.V(RecordIDKey, recordID), goerr.V(FieldIDKey, fieldID))
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.client.SubmitResponse(callCtx, uc.form.ID, &model.SubmitRequest{
		RecordID: recordID,
		Responses: []model.SubmitEntry{{
			FieldID:    fieldID,
			Value:      newValue,
			RecordID:   recordID,
			EmployeeID: uc.session.EmployeeID,
		}},
	}); err != nil {
		// No optimistic mutation for edits: the cell stays untouched
		return goerr.Wrap(err, "failed to save edit",
			goerr.V(RecordIDKey, recordID), goerr.V(FieldIDKey, fieldID))
	}

	updated := cell.Clone()
	updated.Value = newValue
	updated.EmployeeID = uc.session.EmployeeID
	updated.EmployeeName = uc.session.EmployeeName
	record.Responses[fieldID] = updated
	if err := uc.repo.Records().Put(ctx, record); err != nil {
		return err
	}
	uc.states[recordID] = types.RecordStateConfirmed
	return nil
}

// DeleteCell resets one cell to the placeholder after the server
// acknowledges the deletion. The cell is never removed from the record.
func (uc *UseCases) DeleteCell(ctx context.Context, recordID types.RecordID, fieldID types.FieldID, employeeID types.EmployeeID) error {
	if err := uc.checkMutable(); err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.client.DeleteResponse(callCtx, uc.form.ID, &model.DeleteResponseRequest{
		EmployeeID: employeeID,
		FieldID:    fieldID,
		RecordID:   recordID,
	}); err != nil {
		return goerr.Wrap(err, "failed to delete response",
			goerr.V(RecordIDKey, recordID), goerr.V(FieldIDKey, fieldID))
	}

	record, err := uc.repo.Records().Get(ctx, recordID)
	if err != nil {
		return nil // already gone locally; the server side is done
	}
	if cell, ok := record.Responses[fieldID]; ok && cell != nil {
		cell.Value = types.PlaceholderValue
		cell.EmployeeID = ""
		cell.EmployeeName = ""
		return uc.repo.Records().Put(ctx, record)
	}
	return nil
}

// DeleteRecord removes a submission lineage. Records the server never
// acknowledged are removed purely locally, with zero network calls.
func (uc *UseCases) DeleteRecord(ctx context.Context, recordID types.RecordID) error {
	if err := uc.checkMutable(); err != nil {
		return err
	}

	record, err := uc.repo.Records().Get(ctx, recordID)
	if err != nil {
		return goerr.Wrap(ErrRecordNotFound, "cannot delete", goerr.V(RecordIDKey, recordID))
	}

	if !record.IsServerRecord {
		if err := uc.repo.Records().Delete(ctx, recordID); err != nil {
			return err
		}
		if err := uc.repo.Drafts().Clear(ctx, recordID); err != nil {
			return err
		}
		uc.states[recordID] = types.RecordStateRemoved
		return nil
	}

	if !uc.beginSubmit() {
		return goerr.Wrap(ErrSubmitInFlight, "delete rejected", goerr.V(RecordIDKey, recordID))
	}
	defer uc.endSubmit()

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.client.DeleteRecord(callCtx, uc.form.ID, recordID); err != nil {
		// Failure classification (conflict vs authorization vs generic) is
		// carried by the client's error taxonomy; local state is untouched
		return goerr.Wrap(err, "failed to delete record", goerr.V(RecordIDKey, recordID))
	}

	if err := uc.repo.Records().Delete(ctx, recordID); err != nil {
		return err
	}
	if err := uc.repo.Drafts().Clear(ctx, recordID); err != nil {
		return err
	}
	uc.states[recordID] = types.RecordStateRemoved
	return nil
}

// AddRecord creates a new local record with placeholder cells for every
// field. Only level-1 users may create records. The activity log call is
// fire-and-forget; its failure never blocks creation.
func (uc *UseCases) AddRecord(ctx context.Context) (*model.Record, error) {
	if err := uc.checkMutable(); err != nil {
		return nil, err
	}
	if !uc.content.CanFillCurrentLevel {
		return nil, goerr.Wrap(ErrFillNotAllowed, "add record rejected")
	}
	if !hasLevel(uc.sessionLevels(), 1) {
		return nil, goerr.Wrap(ErrLevelRequired, "only level 1 users can add records")
	}

	formID := uc.form.ID
	client := uc.client
	async.Dispatch(ctx, func(ctx context.Context) error {
		return client.LogAddRecord(ctx, formID)
	})

	record := synthesizeRecord(uc.content, uc.session)
	if err := uc.repo.Records().Put(ctx, record); err != nil {
		return nil, err
	}
	if err := uc.resetDraft(ctx, record.ResponseID); err != nil {
		return nil, err
	}
	uc.states[record.ResponseID] = types.RecordStatePlaceholder
	return record, nil
}

// ToggleFormStatus flips the form's active flag. Toggling is allowed while
// the form is inactive, since that is how it comes back to life.
func (uc *UseCases) ToggleFormStatus(ctx context.Context) error {
	if uc.form == nil {
		return ErrNotLoaded
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	updated, err := uc.client.ToggleFormStatus(callCtx, uc.form.ID, !uc.form.Active)
	if err != nil {
		return goerr.Wrap(err, "failed to toggle form status", goerr.V("form_id", uc.form.ID))
	}

	uc.form.Active = updated.Active
	return nil
}

// DeleteForm removes the form itself. Status-code classification for the
// distinct user-facing messages lives in the API client's error taxonomy.
func (uc *UseCases) DeleteForm(ctx context.Context) error {
	if uc.form == nil {
		return ErrNotLoaded
	}

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.client.DeleteForm(callCtx, uc.form.ID); err != nil {
		return goerr.Wrap(err, "failed to delete form", goerr.V("form_id", uc.form.ID))
	}
	return nil
}
