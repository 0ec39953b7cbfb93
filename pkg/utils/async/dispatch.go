package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/utils/logging"
)

// Dispatch runs a handler in a new goroutine, detached from the caller's
// cancellation. Used for fire-and-forget work such as activity logging,
// where failure must not block the originating operation.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	// Detach from the caller's context but keep its logger
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
