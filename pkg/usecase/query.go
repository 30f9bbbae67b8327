package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"github.com/secmon-lab/covidash/pkg/metrics"
	"github.com/secmon-lab/covidash/pkg/service/sqlguard"
)

// QueryErrorPrefix starts every warehouse error message shown in the query panel
const QueryErrorPrefix = "Error executing query: "

// QueryRejectedPrefix starts the message shown when the guard refuses a query
const QueryRejectedPrefix = "Query rejected: "

// Query implements QueryUseCase
type Query struct {
	warehouse interfaces.Warehouse
	guard     *sqlguard.Guard
	presets   *model.QueryPresets
}

// QueryOption configures Query
type QueryOption func(*Query)

// WithGuard overrides the free-text SQL guard
func WithGuard(guard *sqlguard.Guard) QueryOption {
	return func(q *Query) {
		q.guard = guard
	}
}

// WithPresets replaces the built-in presets
func WithPresets(presets *model.QueryPresets) QueryOption {
	return func(q *Query) {
		if presets != nil {
			q.presets = presets
		}
	}
}

// NewQuery creates a new Query use case
func NewQuery(wh interfaces.Warehouse, opts ...QueryOption) QueryUseCase {
	q := &Query{
		warehouse: wh,
		guard:     sqlguard.New(),
		presets:   model.DefaultQueryPresets(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// RunAdHoc runs free-text SQL on a fresh warehouse session
func (q *Query) RunAdHoc(ctx context.Context, input model.AdHocInput) (*model.QueryOutcome, error) {
	if input.Clicks == 0 {
		return nil, model.ErrNoUpdate
	}

	if err := q.guard.Check(input.SQL); err != nil {
		metrics.AdHocRejected.Inc()
		ctxlog.From(ctx).Warn("Ad-hoc query rejected", "error", err)
		return &model.QueryOutcome{Error: QueryRejectedPrefix + sqlguard.Reason(err)}, nil
	}

	return q.execute(ctx, metrics.KindAdHoc, input.SQL), nil
}

// RunPreset runs a named preset with its parameters bound positionally
func (q *Query) RunPreset(ctx context.Context, name types.PresetName, params map[string]string) (*model.QueryOutcome, error) {
	preset, err := q.presets.Find(name)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find preset", goerr.V("preset", name))
	}

	args, err := preset.Bind(params)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind preset parameters", goerr.V("preset", name))
	}

	return q.execute(ctx, metrics.KindPreset, preset.SQL, args...), nil
}

// Presets returns the available presets
func (q *Query) Presets(ctx context.Context) []model.QueryPreset {
	out := make([]model.QueryPreset, len(q.presets.Presets))
	copy(out, q.presets.Presets)
	return out
}

// execute never fails: warehouse errors become the outcome's error message
func (q *Query) execute(ctx context.Context, kind, query string, args ...any) *model.QueryOutcome {
	started := time.Now()
	table, err := q.warehouse.Query(ctx, query, args...)
	metrics.ObserveQuery(kind, started, err)

	if err != nil {
		ctxlog.From(ctx).Warn("Query failed", "kind", kind, "error", err)
		return &model.QueryOutcome{Error: QueryErrorPrefix + rootMessage(err)}
	}
	if table.IsEmpty() {
		return &model.QueryOutcome{Empty: true}
	}

	return &model.QueryOutcome{
		Table: &model.Table{
			Columns: table.ColumnsFromFirstRow(),
			Rows:    table.Rows,
		},
	}
}

// rootMessage returns the message of the innermost error, which is the driver's own text for
// warehouse failures
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
