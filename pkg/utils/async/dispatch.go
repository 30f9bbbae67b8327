package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/covidash/pkg/domain/model"
)

// Dispatch executes handler in a new goroutine with a background context that keeps the
// logger and auth context of ctx. Panics and errors are logged, never propagated.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(newCtx).Error("Panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("Error in async handler",
				"error", err,
			)
		}
	}()
}

// newBackgroundContext detaches from the request lifetime while keeping request values
func newBackgroundContext(ctx context.Context) context.Context {
	newCtx := context.Background()

	if logger := ctxlog.From(ctx); logger != nil {
		newCtx = ctxlog.With(newCtx, logger)
	}

	if authCtx, ok := model.GetAuthContext(ctx); ok {
		newCtx = model.WithAuthContext(newCtx, authCtx.Clone())
	}

	return newCtx
}
