package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/cli/config"
	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/repository/memory"
	"github.com/approvalforms/formsctl/pkg/usecase"
	"github.com/approvalforms/formsctl/pkg/utils/errutil"
	"github.com/approvalforms/formsctl/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := loggerCfg.Flags()
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "formsctl",
		Usage:   "Multi-level approval form client for the forms platform",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logCloser, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, logCloser)

			sentryCloser, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, sentryCloser)

			logging.Default().Debug("Starting formsctl", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for _, closer := range closers {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdRecords(),
			cmdSubmit(),
			cmdAddRecord(),
			cmdEdit(),
			cmdDeleteCell(),
			cmdDeleteRecord(),
			cmdStatus(),
			cmdDeleteForm(),
			cmdExport(),
			cmdActivity(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		return errutil.Handle(ctx, err, "failed to run app")
	}

	return nil
}

// newEngine builds the reconciliation engine from the connection flags
func newEngine(clientCfg *config.Client, profileCfg *config.Profile) (*usecase.UseCases, *model.Session, error) {
	profile, err := profileCfg.Load()
	if err != nil {
		return nil, nil, err
	}
	clientCfg.ApplyProfile(profile)

	client, session, err := clientCfg.Configure()
	if err != nil {
		return nil, nil, err
	}

	uc := usecase.New(memory.New(), client, usecase.WithTimeout(clientCfg.Timeout()))
	return uc, session, nil
}
