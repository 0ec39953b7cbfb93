package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// RecordRow pairs a record with its display label. The label is the
// record's 1-based position in the unfiltered sorted collection, so it does
// not shift as other records are hidden by a search.
type RecordRow struct {
	Label  string
	Record *model.Record
}

// FilterRecords projects the record collection for display. The search term
// matches case-insensitive substrings of the employee ID, the employee
// name, or the positional label ("record 2"). The filter mode selects by
// completeness; a form with zero fields is vacuously complete.
func FilterRecords(records []*model.Record, numFields int, term string, mode types.FilterMode) []RecordRow {
	lowered := strings.ToLower(term)

	var rows []RecordRow
	for i, record := range records {
		label := fmt.Sprintf("record %d", i+1)

		if term != "" {
			match := strings.Contains(strings.ToLower(string(record.EmployeeID)), lowered) ||
				strings.Contains(strings.ToLower(record.EmployeeName), lowered) ||
				strings.Contains(label, lowered)
			if !match {
				continue
			}
		}

		if numFields > 0 {
			answered := record.AnsweredCount()
			switch mode {
			case types.FilterModeComplete:
				if answered != numFields {
					continue
				}
			case types.FilterModePartial:
				if answered == 0 || answered >= numFields {
					continue
				}
			}
		}

		rows = append(rows, RecordRow{Label: label, Record: record})
	}
	return rows
}

// FilterView applies the search term and filter mode to the loaded form's
// record collection
func (uc *UseCases) FilterView(ctx context.Context, term string, mode types.FilterMode) ([]RecordRow, error) {
	if uc.content == nil {
		return nil, ErrNotLoaded
	}
	records, err := uc.repo.Records().List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRecords(records, len(uc.content.Fields), term, mode), nil
}

// LinkCandidate is one lower-level answer a level-≥2 user may chain a
// submission to
type LinkCandidate struct {
	ResponseKey  string
	EmployeeID   types.EmployeeID
	EmployeeName string
	FieldID      types.FieldID
	Question     string
	Value        string
}

// LinkCandidates lists the prior-level answers visible to the session, for
// choosing what a higher-level submission should chain to
func (uc *UseCases) LinkCandidates(ctx context.Context) ([]LinkCandidate, error) {
	if uc.content == nil {
		return nil, ErrNotLoaded
	}

	userLevel := MaxLevel(uc.sessionLevels())
	if userLevel < 2 {
		return nil, nil
	}
	lower := LowerLevelFieldIDs(uc.content.Fields, userLevel)

	records, err := uc.repo.Records().List(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []LinkCandidate
	for _, record := range records {
		for i := range uc.content.Fields {
			field := &uc.content.Fields[i]
			if !lower[field.ID] {
				continue
			}
			cell := record.Responses[field.ID]
			if !cell.IsAnswered() {
				continue
			}
			candidates = append(candidates, LinkCandidate{
				ResponseKey:  types.ResponseKey(cell.EmployeeID, field.ID),
				EmployeeID:   cell.EmployeeID,
				EmployeeName: cell.EmployeeName,
				FieldID:      field.ID,
				Question:     field.Label(),
				Value:        cell.Value,
			})
		}
	}
	return candidates, nil
}
