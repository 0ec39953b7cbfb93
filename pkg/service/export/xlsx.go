package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/utils/safe"
)

// Sheet names in the exported workbook
const (
	sheetDetails     = "Form Details"
	sheetQuestions   = "Questions"
	sheetResponses   = "Responses"
	sheetHistory     = "Response History"
	sheetAssignments = "Level Assignments"
)

// Workbook renders a form snapshot into an xlsx workbook with one sheet per
// concern: form metadata, the question catalog, the reconciled response
// grid, the response history projection, and the level assignment roster.
func Workbook(form *model.Form, content *model.FormContent, records []*model.Record, history []model.HistoryEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeDetails(f, form, content, records); err != nil {
		return nil, err
	}
	if err := writeQuestions(f, content); err != nil {
		return nil, err
	}
	if err := writeResponses(f, content, records); err != nil {
		return nil, err
	}
	if err := writeHistory(f, content, history); err != nil {
		return nil, err
	}
	if err := writeAssignments(f, content); err != nil {
		return nil, err
	}

	// excelize seeds a default sheet that would otherwise linger
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, goerr.Wrap(err, "failed to drop default sheet")
	}
	if idx, err := f.GetSheetIndex(sheetDetails); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// Write renders the workbook and streams it to w
func Write(ctx context.Context, w io.Writer, form *model.Form, content *model.FormContent, records []*model.Record, history []model.HistoryEntry) error {
	f, err := Workbook(form, content, records, history)
	if err != nil {
		return err
	}
	defer safe.Close(ctx, f)

	if err := f.Write(w); err != nil {
		return goerr.Wrap(err, "failed to write workbook")
	}
	return nil
}

func newSheet(f *excelize.File, name string, header []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", name))
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return goerr.Wrap(err, "failed to write header", goerr.V("sheet", name))
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return goerr.Wrap(err, "invalid row", goerr.V("sheet", sheet), goerr.V("row", row))
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return goerr.Wrap(err, "failed to write row", goerr.V("sheet", sheet), goerr.V("row", row))
	}
	return nil
}

func writeDetails(f *excelize.File, form *model.Form, content *model.FormContent, records []*model.Record) error {
	if err := newSheet(f, sheetDetails, []string{"Property", "Value"}); err != nil {
		return err
	}

	status := "Inactive"
	if form.Active {
		status = "Active"
	}
	rows := [][]any{
		{"Form ID", form.ID.String()},
		{"Title", form.Title},
		{"Owner", string(form.OwnerEmployeeID)},
		{"Status", status},
		{"Questions", len(content.Fields)},
		{"Levels", content.NumLevels()},
		{"Records", len(records)},
		{"Exported At", time.Now().Format(time.RFC3339)},
	}
	for i, row := range rows {
		if err := setRow(f, sheetDetails, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeQuestions(f *excelize.File, content *model.FormContent) error {
	if err := newSheet(f, sheetQuestions, []string{"Field ID", "Question", "Type", "Levels", "Options"}); err != nil {
		return err
	}

	for i := range content.Fields {
		field := &content.Fields[i]
		if err := setRow(f, sheetQuestions, i+2, []any{
			string(field.ID),
			field.Label(),
			field.Type.String(),
			joinLevels(field.LevelNumbers),
			strings.Join(field.Options, ", "),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeResponses(f *excelize.File, content *model.FormContent, records []*model.Record) error {
	header := []string{"Record", "Employee ID", "Employee Name"}
	for i := range content.Fields {
		header = append(header, content.Fields[i].Label())
	}
	if err := newSheet(f, sheetResponses, header); err != nil {
		return err
	}

	for i, record := range records {
		row := []any{
			fmt.Sprintf("record %d", i+1),
			string(record.EmployeeID),
			record.EmployeeName,
		}
		for j := range content.Fields {
			row = append(row, record.Cell(content.Fields[j].ID).Value)
		}
		if err := setRow(f, sheetResponses, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeHistory(f *excelize.File, content *model.FormContent, history []model.HistoryEntry) error {
	if err := newSheet(f, sheetHistory, []string{"Employee", "Question", "Action", "Editor", "Record"}); err != nil {
		return err
	}

	for i, entry := range history {
		question := string(entry.FieldID)
		if field := content.FieldByID(entry.FieldID); field != nil {
			question = field.Label()
		}
		editor := entry.EditorName
		if editor == "" {
			editor = string(entry.EditorID)
		}
		if err := setRow(f, sheetHistory, i+2, []any{
			string(entry.EmployeeID),
			question,
			entry.Kind,
			editor,
			string(entry.RecordID),
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeAssignments(f *excelize.File, content *model.FormContent) error {
	if err := newSheet(f, sheetAssignments, []string{"Level", "Employees"}); err != nil {
		return err
	}

	levels := make([]types.Level, 0, len(content.LevelAssignments))
	for level := range content.LevelAssignments {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	for i, level := range levels {
		ids := content.LevelAssignments[level]
		names := make([]string, len(ids))
		for j, id := range ids {
			names[j] = string(id)
		}
		if err := setRow(f, sheetAssignments, i+2, []any{
			int(level),
			strings.Join(names, ", "),
		}); err != nil {
			return err
		}
	}
	return nil
}

func joinLevels(levels []types.Level) string {
	if len(levels) == 0 {
		return "1"
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%d", int(l))
	}
	return strings.Join(parts, ", ")
}
