package safe

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/approvalforms/formsctl/pkg/utils/logging"
)

// Close closes an io.Closer and logs any error. Nil closers are ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Remove deletes a file and logs any error, for cleanup paths where the
// primary error is already being reported.
func Remove(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		logging.From(ctx).Error("Failed to remove", slog.Any("error", err))
	}
}
