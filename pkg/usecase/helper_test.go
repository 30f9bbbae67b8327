package usecase_test

import (
	"time"

	"github.com/secmon-lab/covidash/pkg/domain/model"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

// newTestDataset has six months of Italy and two of Germany, loaded out of order
func newTestDataset() *model.Dataset {
	var records []model.Record
	for m := time.June; m >= time.January; m-- {
		records = append(records, model.Record{
			Month: month(2020, m), ISO: "IT", CountryRegion: "Italy",
			Latitude: 41.87194, Longitude: 12.56738,
			Cases: int64(m) * 1000, Deaths: int64(m) * 10,
		})
	}
	records = append(records,
		model.Record{Month: month(2020, 2), ISO: "DE", CountryRegion: "Germany", Latitude: 51.16, Longitude: 10.45, Cases: 57},
		model.Record{Month: month(2020, 1), ISO: "DE", CountryRegion: "Germany", Latitude: 51.16, Longitude: 10.45, Cases: 5},
	)
	return model.NewDataset(records)
}
