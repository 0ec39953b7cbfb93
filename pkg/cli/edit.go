package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/cli/config"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/service/formsapi"
)

func cmdEdit() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64
	var recordID, fieldID, value string

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
			Usage:       "Record ID",
			Required:    true,
			Destination: &recordID,
		},
		&cli.StringFlag{
			Name:        "field",
			Usage:       "Field ID",
			Required:    true,
			Destination: &fieldID,
		},
		&cli.StringFlag{
			Name:        "value",
			Usage:       "New value",
			Required:    true,
			Destination: &value,
		},
	)

	return &cli.Command{
		Name:  "edit",
		Usage: "Overwrite one confirmed cell",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			if err := uc.EditCell(ctx, types.RecordID(recordID), types.FieldID(fieldID), value); err != nil {
				return err
			}

			fmt.Printf("Updated %s in record %s\n", fieldID, recordID)
			return nil
		},
	}
}

func cmdDeleteCell() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64
	var recordID, fieldID, employeeID string

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
			Usage:       "Record ID",
			Required:    true,
			Destination: &recordID,
		},
		&cli.StringFlag{
			Name:        "field",
			Usage:       "Field ID",
			Required:    true,
			Destination: &fieldID,
		},
		&cli.StringFlag{
			Name:        "employee",
			Usage:       "Employee the answer belongs to (defaults to the session employee)",
			Destination: &employeeID,
		},
	)

	return &cli.Command{
		Name:  "delete-cell",
		Usage: "Reset one answered cell back to the placeholder",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			owner := types.EmployeeID(employeeID)
			if owner == "" {
				owner = session.EmployeeID
			}
			if err := uc.DeleteCell(ctx, types.RecordID(recordID), types.FieldID(fieldID), owner); err != nil {
				return err
			}

			fmt.Printf("Cleared %s in record %s\n", fieldID, recordID)
			return nil
		},
	}
}

func cmdDeleteRecord() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64
	var recordID string

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
			Usage:       "Record ID",
			Required:    true,
			Destination: &recordID,
		},
	)

	return &cli.Command{
		Name:  "delete-record",
		Usage: "Delete a whole record",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			if err := uc.DeleteRecord(ctx, types.RecordID(recordID)); err != nil {
				return describeDeleteFailure(err)
			}

			fmt.Printf("Deleted record %s\n", recordID)
			return nil
		},
	}
}

// describeDeleteFailure rephrases the API error taxonomy into the messages
// shown for record deletion. A bare server error on this path is most often
// the backend refusing to break a reference from a higher level.
func describeDeleteFailure(err error) error {
	switch {
	case errors.Is(err, formsapi.ErrAuthorization):
		return fmt.Errorf("you do not have permission to delete this record: %w", err)
	case errors.Is(err, formsapi.ErrConflict):
		return fmt.Errorf("record is referenced by other responses and cannot be deleted: %w", err)
	case errors.Is(err, formsapi.ErrServer):
		return fmt.Errorf("deletion failed, likely a dependency conflict with linked responses: %w", err)
	default:
		return err
	}
}
