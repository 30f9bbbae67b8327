package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"github.com/secmon-lab/covidash/pkg/metrics"
	"github.com/secmon-lab/covidash/pkg/service/chart"
	"github.com/secmon-lab/covidash/pkg/utils/async"
)

// Dashboard implements DashboardUseCase over the in-memory dataset
type Dashboard struct {
	dataset  *model.Dataset
	repo     interfaces.CommentRepository
	notifier interfaces.Notifier
	charts   *chart.Builder
	now      func() time.Time
}

// DashboardOption configures Dashboard
type DashboardOption func(*Dashboard)

// WithNotifier announces every stored comment
func WithNotifier(notifier interfaces.Notifier) DashboardOption {
	return func(d *Dashboard) {
		d.notifier = notifier
	}
}

// WithChartBuilder overrides the chart builder
func WithChartBuilder(b *chart.Builder) DashboardOption {
	return func(d *Dashboard) {
		d.charts = b
	}
}

// WithClock overrides the clock used for comment timestamps
func WithClock(now func() time.Time) DashboardOption {
	return func(d *Dashboard) {
		d.now = now
	}
}

// NewDashboard creates a new Dashboard use case
func NewDashboard(dataset *model.Dataset, repo interfaces.CommentRepository, opts ...DashboardOption) DashboardUseCase {
	d := &Dashboard{
		dataset: dataset,
		repo:    repo,
		charts:  chart.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Countries returns the dropdown options and the preselected country
func (d *Dashboard) Countries(ctx context.Context) *model.CountryOptions {
	def, _ := d.dataset.DefaultCountry()
	return &model.CountryOptions{
		Countries: d.dataset.Countries(),
		Default:   def,
	}
}

// View derives charts and summary for the country
func (d *Dashboard) View(ctx context.Context, country types.CountryName) (*model.CountryView, error) {
	if !d.dataset.HasCountry(country) {
		return nil, goerr.Wrap(model.ErrCountryNotFound, "unknown country", goerr.V("country", country))
	}

	records := d.dataset.Filter(country)
	deaths, cases := d.charts.Pair(country, records)

	return &model.CountryView{
		Country:     country,
		Records:     records,
		DeathsChart: deaths,
		CasesChart:  cases,
		Summary:     model.Summarize(records),
	}, nil
}

// Select recomputes the view for the selected country. A comment document is inserted only
// when the submit counter advanced past the last handled value and the comment is not blank.
func (d *Dashboard) Select(ctx context.Context, input model.SelectionInput) (*model.SelectionOutput, error) {
	logger := ctxlog.From(ctx)

	country := input.Country
	if country == "" {
		def, ok := d.dataset.DefaultCountry()
		if !ok {
			return nil, goerr.Wrap(model.ErrCountryNotFound, "dataset has no country")
		}
		country = def
	}

	view, err := d.View(ctx, country)
	if err != nil {
		return nil, err
	}

	output := &model.SelectionOutput{View: view}
	if !model.ShouldInsertComment(input.PrevClicks, input.SubmitClicks, input.Comment) {
		return output, nil
	}

	userID := input.UserID
	if userID == "" {
		userID = model.UserIDFromContext(ctx)
	}

	doc, err := model.NewCommentDocument(country, view.Records, userID, input.Comment, d.now())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build comment document", goerr.V("country", country))
	}

	err = d.repo.InsertComment(ctx, doc)
	metrics.ObserveCommentInsert(d.repo.Name(), err)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store comment",
			goerr.V("country", country),
			goerr.V("store", d.repo.Name()))
	}

	logger.Info("Comment stored",
		"id", doc.ID,
		"dataPointID", doc.DataPointID,
		"store", d.repo.Name(),
		"clicks", input.SubmitClicks,
	)

	if d.notifier != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return d.notifier.NotifyComment(ctx, doc)
		})
	}

	output.CommentAdded = doc
	return output, nil
}

// ListComments returns stored comment documents of the country, newest first
func (d *Dashboard) ListComments(ctx context.Context, country types.CountryName, limit int) ([]*model.CommentDocument, error) {
	if !d.dataset.HasCountry(country) {
		return nil, goerr.Wrap(model.ErrCountryNotFound, "unknown country", goerr.V("country", country))
	}

	docs, err := d.repo.ListComments(ctx, country.DataPointID(), limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comments", goerr.V("country", country))
	}
	return docs, nil
}
