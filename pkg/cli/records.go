package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/cli/config"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/usecase"
)

func cmdRecords() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64
	var search string
	var filter string

	flags := clientCfg.Flags()
	flags = append(flags, profileCfg.Flags()...)
	flags = append(flags,
		&cli.Int64Flag{
			Name:        "form",
			Usage:       "Form ID",
			Required:    true,
			Destination: &formID,
			Sources:     cli.EnvVars("FORMSCTL_FORM"),
		},
		&cli.StringFlag{
			Name:        "search",
			Usage:       "Match employee ID, employee name, or record label",
			Destination: &search,
		},
		&cli.StringFlag{
			Name:        "filter",
			Usage:       "Completeness filter (all, complete, partial)",
			Value:       "all",
			Destination: &filter,
		},
	)

	return &cli.Command{
		Name:  "records",
		Usage: "Show the reconciled record collection for a form",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			mode := types.FilterMode(filter)
			if !mode.IsValid() {
				return goerr.New("unknown filter mode", goerr.V("filter", filter))
			}

			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			rows, err := uc.FilterView(ctx, search, mode)
			if err != nil {
				return err
			}

			renderRecords(os.Stdout, uc, rows)
			return nil
		},
	}
}

func renderRecords(w *os.File, uc *usecase.UseCases, rows []usecase.RecordRow) {
	form := uc.Form()
	content := uc.Content()

	title := color.New(color.Bold).Sprint(form.Title)
	status := color.GreenString("active")
	if !form.Active {
		status = color.RedString("inactive")
	}
	fmt.Fprintf(w, "%s (form %s, %s)\n\n", title, form.ID.String(), status)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := color.New(color.Bold, color.Underline)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s", header.Sprint("RECORD"), header.Sprint("EMPLOYEE"), header.Sprint("NAME"), header.Sprint("STATE"))
	for i := range content.Fields {
		fmt.Fprintf(tw, "\t%s", header.Sprint(content.Fields[i].Label()))
	}
	fmt.Fprintln(tw)

	dim := color.New(color.Faint)
	for _, row := range rows {
		record := row.Record
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s",
			row.Label, record.EmployeeID, record.EmployeeName,
			renderState(uc.RecordState(record.ResponseID)))
		for i := range content.Fields {
			cell := record.Cell(content.Fields[i].ID)
			if cell.IsAnswered() {
				fmt.Fprintf(tw, "\t%s", cell.Value)
			} else {
				fmt.Fprintf(tw, "\t%s", dim.Sprint(types.PlaceholderValue))
			}
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%d record(s)\n", len(rows))
}

func renderState(state types.RecordState) string {
	switch state {
	case types.RecordStateConfirmed:
		return color.GreenString(string(state))
	case types.RecordStatePending:
		return color.YellowString(string(state))
	case types.RecordStateDraft:
		return color.CyanString(string(state))
	case types.RecordStateRemoved:
		return color.RedString(string(state))
	default:
		return string(state)
	}
}
