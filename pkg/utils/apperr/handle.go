package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs an error that ends a request. Canceled requests are not treated as failures.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("request canceled", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
