package model

import (
	"sort"
	"time"

	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// CountryView is everything the dashboard renders for the selected country
type CountryView struct {
	Country     types.CountryName `json:"country"`
	Records     []Record          `json:"records"`
	DeathsChart *Figure           `json:"deaths_chart"`
	CasesChart  *Figure           `json:"cases_chart"`
	Summary     []SummaryRow      `json:"summary"`
}

// SummaryRow is one row of the summary table
type SummaryRow struct {
	Month         time.Time         `json:"MONTH"`
	ISO           types.ISOCode     `json:"ISO"`
	CountryRegion types.CountryName `json:"COUNTRY_REGION"`
	Latitude      float64           `json:"LATITUDE"`
	Longitude     float64           `json:"LONGITUDE"`
	Cases         int64             `json:"CASES"`
	Deaths        int64             `json:"DEATHS"`
}

type summaryKey struct {
	month   time.Time
	iso     types.ISOCode
	country types.CountryName
	lat     float64
	lon     float64
}

// Summarize groups records by (month, ISO, country, latitude, longitude) and sums cases
// and deaths. Groups are ordered by their keys.
func Summarize(records []Record) []SummaryRow {
	groups := make(map[summaryKey]*SummaryRow)
	var keys []summaryKey

	for _, r := range records {
		key := summaryKey{
			month:   r.Month,
			iso:     r.ISO,
			country: r.CountryRegion,
			lat:     r.Latitude,
			lon:     r.Longitude,
		}
		row, ok := groups[key]
		if !ok {
			row = &SummaryRow{
				Month:         r.Month,
				ISO:           r.ISO,
				CountryRegion: r.CountryRegion,
				Latitude:      r.Latitude,
				Longitude:     r.Longitude,
			}
			groups[key] = row
			keys = append(keys, key)
		}
		row.Cases += r.Cases
		row.Deaths += r.Deaths
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch {
		case !a.month.Equal(b.month):
			return a.month.Before(b.month)
		case a.iso != b.iso:
			return a.iso < b.iso
		case a.country != b.country:
			return a.country < b.country
		case a.lat != b.lat:
			return a.lat < b.lat
		default:
			return a.lon < b.lon
		}
	})

	rows := make([]SummaryRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, *groups[key])
	}
	return rows
}

// CountryOptions is the content of the country dropdown
type CountryOptions struct {
	Countries []types.CountryName `json:"countries"`
	Default   types.CountryName   `json:"default"`
}
