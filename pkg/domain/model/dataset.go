package model

import (
	"sort"

	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// Dataset is the read-only snapshot of the dataset query, held for the lifetime of the server.
// It is safe for concurrent use because nothing mutates it after NewDataset returns.
type Dataset struct {
	records   []Record
	countries []types.CountryName
	index     map[types.CountryName][]int
}

// NewDataset copies records into a new immutable dataset
func NewDataset(records []Record) *Dataset {
	ds := &Dataset{
		records: make([]Record, len(records)),
		index:   make(map[types.CountryName][]int),
	}
	copy(ds.records, records)

	for i, r := range ds.records {
		if _, ok := ds.index[r.CountryRegion]; !ok {
			ds.countries = append(ds.countries, r.CountryRegion)
		}
		ds.index[r.CountryRegion] = append(ds.index[r.CountryRegion], i)
	}

	return ds
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in load order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Countries returns the distinct country names in order of first appearance
func (d *Dataset) Countries() []types.CountryName {
	out := make([]types.CountryName, len(d.countries))
	copy(out, d.countries)
	return out
}

// DefaultCountry returns the country preselected in the dropdown
func (d *Dataset) DefaultCountry() (types.CountryName, bool) {
	if len(d.countries) == 0 {
		return "", false
	}
	return d.countries[0], true
}

// HasCountry reports whether the dataset contains at least one row for the country
func (d *Dataset) HasCountry(country types.CountryName) bool {
	_, ok := d.index[country]
	return ok
}

// Filter returns the rows of the country sorted by month ascending. Rows with the same
// month keep their load order.
func (d *Dataset) Filter(country types.CountryName) []Record {
	idx := d.index[country]
	out := make([]Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.records[i])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out
}
