package usecase

import (
	"context"
	"sort"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// BuildRecords reconciles the raw server response feed and the
// higher-priority hints embedded in the form configuration into the
// normalized record collection.
//
// Resolution order between duplicate entries for the same (record, field)
// is the server feed's arrival order: a real answer always beats the
// placeholder, and between two real answers the later-processed one wins.
// The feed carries no usable timestamps, so arrival order is the contract.
func BuildRecords(content *model.FormContent, rows []*model.ServerResponse, session *model.Session) []*model.Record {
	records := make(map[types.RecordID]*model.Record)
	var order []types.RecordID

	locate := func(id types.RecordID, employeeID types.EmployeeID, employeeName string, isServer bool) *model.Record {
		if record, ok := records[id]; ok {
			return record
		}
		if employeeName == "" {
			employeeName = string(employeeID)
		}
		record := model.NewRecord(id, employeeID, employeeName, isServer)
		records[id] = record
		order = append(order, id)
		return record
	}

	// Step 1: group the server feed by submission lineage
	for _, row := range rows {
		for i := range row.Responses {
			fr := &row.Responses[i]
			recordID := fr.RecordIDFor(row)
			record := locate(recordID, row.EmployeeID, row.EmployeeName, true)

			fieldLevel := types.Level(1)
			question := "Field " + string(fr.FieldID)
			if field := content.FieldByID(fr.FieldID); field != nil {
				fieldLevel = field.PrimaryLevel()
				question = field.Label()
			}
			record.AddLevel(fieldLevel)

			existing := record.Responses[fr.FieldID]
			if existing == nil || fr.Value != types.PlaceholderValue {
				employeeID := fr.EmployeeID
				if employeeID == "" {
					employeeID = row.EmployeeID
				}
				employeeName := fr.EmployeeName
				if employeeName == "" {
					employeeName = string(employeeID)
				}
				record.Responses[fr.FieldID] = &model.ResponseCell{
					Value:            fr.Value,
					ResponseID:       recordID,
					LinkedResponseID: fr.LinkedResponseID,
					EmployeeID:       employeeID,
					EmployeeName:     employeeName,
					FieldLevel:       fieldLevel,
					Question:         question,
					IsServerResponse: true,
				}
			}
		}
	}

	// Step 2: a level-1 user looking at an empty form gets one synthesized
	// record so there is something to fill in
	if len(records) == 0 && session != nil {
		levels := UserLevels(content.LevelAssignments, session.EmployeeID)
		if hasLevel(levels, 1) {
			record := synthesizeRecord(content, session)
			records[record.ResponseID] = record
			order = append(order, record.ResponseID)
		}
	}

	// Step 3: merge higher-priority hints for read visibility into other
	// levels' answers
	for fieldID, hints := range content.HigherPriorityResponses {
		for _, hint := range hints {
			recordID := hint.RecordID
			if existing := findServerRecordByEmployee(records, order, hint.EmployeeID); existing != nil {
				recordID = existing.ResponseID
			}
			if recordID == "" {
				recordID = types.NewRecordID()
			}
			record := locate(recordID, hint.EmployeeID, hint.EmployeeName, hint.RecordID != "")

			fieldLevel := types.Level(1)
			question := "Field " + string(fieldID)
			if field := content.FieldByID(fieldID); field != nil {
				fieldLevel = field.PrimaryLevel()
				question = field.Label()
			}
			record.AddLevel(fieldLevel)

			hintIsServer := hint.RecordID != ""
			existing := record.Responses[fieldID]
			overwrite := existing == nil ||
				(hintIsServer && !existing.IsServerResponse) ||
				(hintIsServer && existing.IsServerResponse && hint.Value != types.PlaceholderValue)
			if overwrite {
				employeeName := hint.EmployeeName
				if employeeName == "" {
					employeeName = string(hint.EmployeeID)
				}
				record.Responses[fieldID] = &model.ResponseCell{
					Value:            hint.Value,
					ResponseID:       record.ResponseID,
					LinkedResponseID: hint.LinkedResponseID,
					EmployeeID:       hint.EmployeeID,
					EmployeeName:     employeeName,
					FieldLevel:       fieldLevel,
					Question:         question,
					IsServerResponse: hintIsServer,
				}
			}
		}
	}

	// Step 4: deterministic display order
	result := make([]*model.Record, 0, len(order))
	for _, id := range order {
		result = append(result, records[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EmployeeID < result[j].EmployeeID
	})
	return result
}

// synthesizeRecord creates a client-only record pre-populated with
// placeholder cells for every field
func synthesizeRecord(content *model.FormContent, session *model.Session) *model.Record {
	record := model.NewRecord(types.NewRecordID(), session.EmployeeID, session.EmployeeName, false)
	for i := range content.Fields {
		field := &content.Fields[i]
		record.AddLevel(field.PrimaryLevel())
		record.Responses[field.ID] = &model.ResponseCell{
			Value:        types.PlaceholderValue,
			ResponseID:   record.ResponseID,
			EmployeeID:   session.EmployeeID,
			EmployeeName: session.EmployeeName,
			FieldLevel:   field.PrimaryLevel(),
			Question:     field.Label(),
		}
	}
	return record
}

func findServerRecordByEmployee(records map[types.RecordID]*model.Record, order []types.RecordID, employeeID types.EmployeeID) *model.Record {
	for _, id := range order {
		if record := records[id]; record.EmployeeID == employeeID && record.IsServerRecord {
			return record
		}
	}
	return nil
}

// Reconcile rebuilds the record store from the given feed. Any prior
// records are replaced; local-only records not yet submitted do not survive
// a reload, matching a page refresh in the original client.
func (uc *UseCases) Reconcile(ctx context.Context, rows []*model.ServerResponse) error {
	if uc.content == nil {
		return ErrNotLoaded
	}

	if err := uc.repo.Records().Clear(ctx); err != nil {
		return err
	}
	// States follow the store: a reload forgets lifecycle entries for
	// records that no longer exist
	uc.states = map[types.RecordID]types.RecordState{}

	records := BuildRecords(uc.content, rows, uc.session)
	for _, record := range records {
		if err := uc.repo.Records().Put(ctx, record); err != nil {
			return err
		}
		if record.AnsweredCount() > 0 || record.IsServerRecord {
			uc.states[record.ResponseID] = types.RecordStateConfirmed
		} else {
			uc.states[record.ResponseID] = types.RecordStatePlaceholder
		}
	}
	return nil
}

// Records returns the reconciled collection sorted for display
func (uc *UseCases) Records(ctx context.Context) ([]*model.Record, error) {
	return uc.repo.Records().List(ctx)
}

// RecordState reports a record's position in the local mutation lifecycle
func (uc *UseCases) RecordState(id types.RecordID) types.RecordState {
	if state, ok := uc.states[id]; ok {
		return state
	}
	return types.RecordStateRemoved
}
