package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/metrics"
)

// DefaultDatasetQuery aggregates the ECDC table by month and joins country coordinates
const DefaultDatasetQuery = `SELECT
  DATE_TRUNC('MONTH', EG.DATE) AS MONTH,
  EG.ISO3166_1 AS ISO,
  EG.COUNTRY_REGION,
  CD.LATITUDE,
  CD.LONGITUDE,
  SUM(EG.CASES) AS Cases,
  SUM(EG.DEATHS) AS Deaths
FROM
  COVID19_EPIDEMIOLOGICAL_DATA.PUBLIC.ECDC_GLOBAL EG
JOIN
  COUNTRIES_DATA.PUBLIC.COUNTRIES CD ON EG.ISO3166_1 = CD.ISO2
GROUP BY
  MONTH,
  ISO,
  COUNTRY_REGION,
  LATITUDE,
  LONGITUDE
ORDER BY
  ISO,
  COUNTRY_REGION,
  MONTH`

// LoadDataset runs the dataset query once and builds the in-memory dataset. Any failure is
// returned so that the caller can abort startup.
func LoadDataset(ctx context.Context, wh interfaces.Warehouse, query string) (*model.Dataset, error) {
	if query == "" {
		query = DefaultDatasetQuery
	}

	started := time.Now()
	table, err := wh.Query(ctx, query)
	metrics.ObserveQuery(metrics.KindStartup, started, err)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to run dataset query")
	}
	if table.IsEmpty() {
		return nil, goerr.Wrap(model.ErrEmptyDataset, "dataset query returned no rows")
	}

	records, err := model.RecordsFromTable(table)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to map dataset rows")
	}

	ds := model.NewDataset(records)
	metrics.DatasetRecords.Set(float64(ds.Len()))

	ctxlog.From(ctx).Info("Dataset loaded",
		"records", ds.Len(),
		"countries", len(ds.Countries()),
		"duration", time.Since(started),
	)

	return ds, nil
}
