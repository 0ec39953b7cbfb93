package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/service/formsapi"
	"github.com/approvalforms/formsctl/pkg/utils/logging"
)

// Load fetches the form, its responses, and its activity feed in parallel,
// parses the configuration, and reconciles the record collection. A config
// parse failure is fatal for the form; an activity fetch failure is not.
func (uc *UseCases) Load(ctx context.Context, formID types.FormID, session *model.Session) error {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	var (
		form     *model.Form
		rows     []*model.ServerResponse
		activity []*model.Activity
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		form, err = uc.client.FetchForm(egCtx, formID)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch form", goerr.V("form_id", formID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		rows, err = uc.client.FetchResponses(egCtx, formID)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch responses", goerr.V("form_id", formID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		activity, err = uc.client.FetchActivity(egCtx, formID)
		if err != nil {
			// Some forms predate the activity log; treat a missing feed as empty
			if errors.Is(err, formsapi.ErrNotFound) {
				logging.From(egCtx).Debug("no activity log for form", "form_id", formID)
				activity = nil
				return nil
			}
			return goerr.Wrap(err, "failed to fetch activity", goerr.V("form_id", formID))
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	content, err := model.ParseFormContent(form.FormContent)
	if err != nil {
		return goerr.Wrap(err, "form configuration rejected", goerr.V("form_id", formID))
	}
	// Forms created before priority ordering carry no order at all; those
	// still load. A present-but-broken order does not.
	if len(content.LevelPriorityOrder) > 0 {
		if err := CheckPriorityOrder(content.LevelPriorityOrder, content.NumLevels()); err != nil {
			return goerr.Wrap(err, "form configuration rejected", goerr.V("form_id", formID))
		}
	}

	uc.form = form
	uc.content = content
	uc.session = session
	uc.activity = activity
	uc.history = model.HistoryFromResponses(rows)

	return uc.Reconcile(ctx, rows)
}
