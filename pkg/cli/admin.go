package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/cli/config"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

func cmdStatus() *cli.Command {
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
		Name:  "status",
		Usage: "Toggle a form between active and inactive",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			if err := uc.ToggleFormStatus(ctx); err != nil {
				return err
			}

			state := "inactive"
			if uc.Form().Active {
				state = "active"
			}
			fmt.Printf("Form %d is now %s\n", formID, state)
			return nil
		},
	}
}

func cmdDeleteForm() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64
	var confirmed bool

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
		&cli.BoolFlag{
			Name:        "yes",
			Usage:       "Confirm the deletion",
			Destination: &confirmed,
		},
	)

	return &cli.Command{
		Name:  "delete-form",
		Usage: "Delete a form and all of its responses",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if !confirmed {
				return goerr.New("deleting a form is irreversible; re-run with --yes to confirm",
					goerr.V("form_id", formID))
			}

			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			if err := uc.DeleteForm(ctx); err != nil {
				return err
			}

			fmt.Printf("Deleted form %d\n", formID)
			return nil
		},
	}
}
