package chart_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/service/chart"
)

func italyRecords() []model.Record {
	var records []model.Record
	for m := time.January; m <= time.June; m++ {
		records = append(records, model.Record{
			Month:         time.Date(2020, m, 1, 0, 0, 0, 0, time.UTC),
			ISO:           "IT",
			CountryRegion: "Italy",
			Cases:         int64(m) * 1000,
			Deaths:        int64(m) * 10,
		})
	}
	return records
}

func TestBuilder_Pair(t *testing.T) {
	deaths, cases := chart.New().Pair("Italy", italyRecords())

	t.Run("one point per month", func(t *testing.T) {
		gt.Equal(t, len(deaths.XValues()), 6)
		gt.Equal(t, len(cases.XValues()), 6)
		gt.Equal(t, deaths.XValues()[0], "2020-01-01")
		gt.Equal(t, deaths.XValues()[5], "2020-06-01")
	})

	t.Run("titles and labels", func(t *testing.T) {
		gt.Equal(t, deaths.Layout.Title.Text, "COVID-19 Deaths for Italy")
		gt.Equal(t, cases.Layout.Title.Text, "COVID-19 Cases for Italy")
		gt.Equal(t, deaths.Layout.YAxis.Title.Text, "Number of Deaths")
		gt.Equal(t, cases.Layout.YAxis.Title.Text, "Number of Cases")
		gt.Equal(t, deaths.Layout.BarMode, "group")
	})

	t.Run("values, labels and colors follow the metric", func(t *testing.T) {
		trace := deaths.Data[0]
		gt.Equal(t, trace.Type, "bar")
		gt.Equal(t, trace.Y[2], int64(30))
		gt.Equal(t, trace.Text[2], "30")
		gt.Equal(t, trace.TextPosition, "auto")
		gt.Equal(t, trace.Marker.Color, trace.Y)
		gt.Equal(t, trace.Marker.ColorScale, chart.DefaultColorScale)

		gt.Equal(t, cases.Data[0].Y[5], int64(6000))
	})
}

func TestBuilder_Empty(t *testing.T) {
	fig := chart.New(chart.WithColorScale("Viridis")).Bar("Atlantis", nil, chart.MetricCases)

	gt.Equal(t, len(fig.XValues()), 0)
	gt.Equal(t, fig.Data[0].Marker.ColorScale, "Viridis")
	gt.Equal(t, fig.Layout.Title.Text, "COVID-19 Cases for Atlantis")
}
