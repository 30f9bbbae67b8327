package apperr_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidash/pkg/utils/apperr"
)

func TestHandle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	apperr.Handle(ctx, goerr.New("insert failed", goerr.V("store", "mongo")))
	gt.S(t, buf.String()).Contains(`"level":"ERROR"`)
	gt.S(t, buf.String()).Contains("insert failed")

	buf.Reset()
	apperr.Handle(ctx, goerr.Wrap(context.Canceled, "query aborted"))
	gt.S(t, buf.String()).Contains(`"level":"WARN"`)
}
