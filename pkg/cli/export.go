package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/cli/config"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/service/export"
	"github.com/approvalforms/formsctl/pkg/utils/safe"
)

func cmdExport() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64
	var output string

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
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output path for the workbook",
			Destination: &output,
		},
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Export a form snapshot as an xlsx workbook",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}
			if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
				return err
			}

			records, err := uc.Records(ctx)
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = fmt.Sprintf("form-%d.xlsx", formID)
			}
			f, err := os.Create(path)
			if err != nil {
				return goerr.Wrap(err, "failed to create output file", goerr.V("path", path))
			}
			defer safe.Close(ctx, f)

			if err := export.Write(ctx, f, uc.Form(), uc.Content(), records, uc.History()); err != nil {
				safe.Remove(ctx, path)
				return err
			}

			fmt.Printf("Exported %d record(s) to %s\n", len(records), path)
			return nil
		},
	}
}
