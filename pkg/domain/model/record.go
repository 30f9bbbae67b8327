package model

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// Column names projected by the dataset query. The rest of the system relies on them verbatim.
const (
	ColumnMonth         = "MONTH"
	ColumnISO           = "ISO"
	ColumnCountryRegion = "COUNTRY_REGION"
	ColumnLatitude      = "LATITUDE"
	ColumnLongitude     = "LONGITUDE"
	ColumnCases         = "CASES"
	ColumnDeaths        = "DEATHS"
)

// DatasetColumns lists the dataset columns in projection order
var DatasetColumns = []string{
	ColumnMonth,
	ColumnISO,
	ColumnCountryRegion,
	ColumnLatitude,
	ColumnLongitude,
	ColumnCases,
	ColumnDeaths,
}

// Record is one (month, country) row of the epidemiological aggregate
type Record struct {
	Month         time.Time         `json:"MONTH" firestore:"MONTH" bson:"MONTH"`
	ISO           types.ISOCode     `json:"ISO" firestore:"ISO" bson:"ISO"`
	CountryRegion types.CountryName `json:"COUNTRY_REGION" firestore:"COUNTRY_REGION" bson:"COUNTRY_REGION"`
	Latitude      float64           `json:"LATITUDE" firestore:"LATITUDE" bson:"LATITUDE"`
	Longitude     float64           `json:"LONGITUDE" firestore:"LONGITUDE" bson:"LONGITUDE"`
	Cases         int64             `json:"CASES" firestore:"CASES" bson:"CASES"`
	Deaths        int64             `json:"DEATHS" firestore:"DEATHS" bson:"DEATHS"`
}

// RecordsFromTable converts a warehouse result into records. Column names are matched
// case-insensitively because warehouses differ in how they fold unquoted aliases.
func RecordsFromTable(table *Table) ([]Record, error) {
	if table == nil {
		return nil, goerr.New("table is nil")
	}

	colMap := make(map[string]string, len(table.Columns))
	for _, col := range table.Columns {
		colMap[strings.ToUpper(col)] = col
	}
	for _, want := range DatasetColumns {
		if _, ok := colMap[want]; !ok {
			return nil, goerr.New("dataset column is missing",
				goerr.V("column", want),
				goerr.V("columns", table.Columns))
		}
	}

	records := make([]Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		get := func(name string) any { return row[colMap[name]] }

		month, err := toMonth(get(ColumnMonth))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid MONTH value", goerr.V("row", i))
		}
		lat, err := toFloat(get(ColumnLatitude))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid LATITUDE value", goerr.V("row", i))
		}
		lon, err := toFloat(get(ColumnLongitude))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid LONGITUDE value", goerr.V("row", i))
		}
		cases, err := toInt(get(ColumnCases))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid CASES value", goerr.V("row", i))
		}
		deaths, err := toInt(get(ColumnDeaths))
		if err != nil {
			return nil, goerr.Wrap(err, "invalid DEATHS value", goerr.V("row", i))
		}

		records = append(records, Record{
			Month:         month,
			ISO:           types.ISOCode(toString(get(ColumnISO))),
			CountryRegion: types.CountryName(toString(get(ColumnCountryRegion))),
			Latitude:      lat,
			Longitude:     lon,
			Cases:         cases,
			Deaths:        deaths,
		})
	}

	return records, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
}

// toMonth converts a driver value into the first instant of its month in UTC
func toMonth(v any) (time.Time, error) {
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case string, []byte:
		s := strings.TrimSpace(toString(val))
		parsed := false
		for _, layout := range timeLayouts {
			if p, err := time.Parse(layout, s); err == nil {
				t = p
				parsed = true
				break
			}
		}
		if !parsed {
			return time.Time{}, goerr.New("unsupported date format", goerr.V("value", s))
		}
	default:
		return time.Time{}, goerr.New("unsupported date type", goerr.V("value", v))
	}

	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

func toFloat(v any) (float64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case string, []byte:
		s := strings.TrimSpace(toString(val))
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, goerr.Wrap(err, "not a number", goerr.V("value", s))
		}
		return f, nil
	default:
		return 0, goerr.New("unsupported numeric type", goerr.V("value", v))
	}
}

func toInt(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case int:
		return int64(val), nil
	case string, []byte:
		s := strings.TrimSpace(toString(val))
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
	}

	// Decimal and float sums (e.g. "12.000" or 12.0) are rounded to the nearest count
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f)), nil
}
