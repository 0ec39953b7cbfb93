package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/approvalforms/formsctl/pkg/cli/config"
	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

func cmdActivity() *cli.Command {
	var clientCfg config.Client
	var profileCfg config.Profile
	var formID int64

	flags := clientCfg.Flags()
	flags = append(flags, profileCfg.Flags()...)
	flags = append(flags,
		&cli.Int64Flag{
			Name:        "form",
			Usage:       "Form ID (omit for the recent activity dashboard)",
			Destination: &formID,
			Sources:     cli.EnvVars("FORMSCTL_FORM"),
		},
	)

	return &cli.Command{
		Name:  "activity",
		Usage: "Show a form's activity feed, or recent activity across forms",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := newEngine(&clientCfg, &profileCfg)
			if err != nil {
				return err
			}

			var feed []*model.Activity
			showForm := formID == 0
			if formID != 0 {
				if err := uc.Load(ctx, types.FormID(formID), session); err != nil {
					return err
				}
				feed = uc.Activity()
			} else {
				client, _, err := clientCfg.Configure()
				if err != nil {
					return err
				}
				feed, err = client.FetchRecentActivity(ctx)
				if err != nil {
					return err
				}
			}

			if len(feed) == 0 {
				fmt.Println("No activity")
				return nil
			}

			renderActivity(feed, showForm)
			return nil
		},
	}
}

func renderActivity(feed []*model.Activity, showForm bool) {
	dim := color.New(color.Faint)
	actor := color.New(color.Bold)
	for _, entry := range feed {
		who := entry.EmployeeName
		if who == "" {
			who = string(entry.EmployeeID)
		}

		when := entry.Timestamp
		if ts := entry.Time(); !ts.IsZero() {
			when = ts.Local().Format(time.RFC822)
		}

		line := fmt.Sprintf("%s %s %s", dim.Sprint(when), actor.Sprint(who), entry.ActionType.Describe())
		if showForm && entry.FormTitle != "" {
			line += dim.Sprintf(" on %q", entry.FormTitle)
		}
		fmt.Println(line)
	}
}
