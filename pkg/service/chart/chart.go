// Package chart builds the Plotly bar figures shown for a country.
package chart

import (
	"fmt"
	"strconv"

	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// MonthLayout formats the x axis values
const MonthLayout = "2006-01-02"

// DefaultColorScale is the Plotly continuous color scale used for bar colors
const DefaultColorScale = "Plasma"

// Metric selects the value plotted on the y axis
type Metric string

const (
	MetricDeaths Metric = "Deaths"
	MetricCases  Metric = "Cases"
)

func (m Metric) value(r model.Record) int64 {
	if m == MetricDeaths {
		return r.Deaths
	}
	return r.Cases
}

// Title returns the chart title for the country
func (m Metric) Title(country types.CountryName) string {
	return fmt.Sprintf("COVID-19 %s for %s", m, country)
}

// AxisLabel returns the y axis label
func (m Metric) AxisLabel() string {
	return "Number of " + string(m)
}

// Builder creates bar figures
type Builder struct {
	colorScale string
}

// Option configures Builder
type Option func(*Builder)

// WithColorScale overrides the color scale name
func WithColorScale(name string) Option {
	return func(b *Builder) {
		b.colorScale = name
	}
}

// New creates a Builder
func New(opts ...Option) *Builder {
	b := &Builder{colorScale: DefaultColorScale}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bar builds one bar chart of metric per month. records are expected to be a single
// country's rows ordered by month.
func (b *Builder) Bar(country types.CountryName, records []model.Record, metric Metric) *model.Figure {
	x := make([]string, 0, len(records))
	y := make([]int64, 0, len(records))
	text := make([]string, 0, len(records))

	for _, r := range records {
		v := metric.value(r)
		x = append(x, r.Month.Format(MonthLayout))
		y = append(y, v)
		text = append(text, strconv.FormatInt(v, 10))
	}

	label := metric.AxisLabel()
	return &model.Figure{
		Data: []model.BarTrace{
			{
				Type:          "bar",
				Name:          string(metric),
				X:             x,
				Y:             y,
				Text:          text,
				TextPosition:  "auto",
				HoverTemplate: "MONTH=%{x}<br>" + label + "=%{y}<extra></extra>",
				Marker: model.Marker{
					Color:      y,
					ColorScale: b.colorScale,
					ShowScale:  true,
					ColorBar:   &model.ColorBar{Title: model.Title{Text: label}},
				},
			},
		},
		Layout: model.Layout{
			Title:   model.Title{Text: metric.Title(country)},
			BarMode: "group",
			XAxis:   model.Axis{Title: model.Title{Text: "MONTH"}, Type: "date"},
			YAxis:   model.Axis{Title: model.Title{Text: label}},
		},
	}
}

// Pair builds the deaths and cases charts for the country
func (b *Builder) Pair(country types.CountryName, records []model.Record) (deaths, cases *model.Figure) {
	return b.Bar(country, records, MetricDeaths), b.Bar(country, records, MetricCases)
}
