package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/cli/config"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/utils/logging"
)

func cmdSubmit() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64
	var recordID string
	var values []string

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
			Name:        "record",
			Usage:       "Record ID to submit into",
			Required:    true,
			Destination: &recordID,
		},
		&cli.StringSliceFlag{
			Name:        "set",
			Usage:       "Field value as field-id=value (repeatable)",
			Destination: &values,
		},
	)

	return &cli.Command{
		Name:  "submit",
		Usage: "Draft field values into a record and submit them",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if len(values) == 0 {
				return goerr.New("at least one --set field-id=value is required")
			}

			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			rid := types.RecordID(recordID)
			if err := uc.SelectRecord(ctx, rid); err != nil {
				return err
			}

			for _, kv := range values {
				fieldID, value, ok := strings.Cut(kv, "=")
				if !ok {
					return goerr.New("--set expects field-id=value", goerr.V("arg", kv))
				}
				if uc.Content().FieldByID(types.FieldID(fieldID)) == nil {
					return goerr.New("unknown field", goerr.V("field_id", fieldID))
				}
				if err := uc.SetDraft(ctx, rid, types.FieldID(fieldID), value); err != nil {
					return err
				}
			}

			if err := uc.SubmitRecord(ctx, rid); err != nil {
				return err
			}

			logging.From(ctx).Info("Submitted record",
				"form_id", formID, "record_id", recordID, "fields", len(values))
			fmt.Printf("Submitted %d field(s) to record %s\n", len(values), recordID)
			return nil
		},
	}
}

func cmdAddRecord() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64

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
	)

	return &cli.Command{
		Name:  "add-record",
		Usage: "Create a new empty record (level 1 only)",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			record, err := uc.AddRecord(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Created record %s\n", record.ResponseID)
			return nil
		},
	}
}
