package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/usecase"
	"github.com/secmon-lab/covidash/pkg/warehouse"
)

func TestQuery_RunAdHoc(t *testing.T) {
	ctx := context.Background()

	t.Run("zero clicks is no update", func(t *testing.T) {
		wh := &mocks.WarehouseMock{}
		uc := usecase.NewQuery(wh)

		_, err := uc.RunAdHoc(ctx, model.AdHocInput{Clicks: 0, SQL: model.DefaultCountriesSQL})
		gt.True(t, errors.Is(err, model.ErrNoUpdate))
		gt.Equal(t, len(wh.QueryCalls()), 0)
	})

	t.Run("rows become a table", func(t *testing.T) {
		wh := &mocks.WarehouseMock{
			QueryFunc: func(ctx context.Context, query string, args ...any) (*model.Table, error) {
				return &model.Table{
					Columns: []string{"COUNTRY_REGION"},
					Rows: []map[string]any{
						{"COUNTRY_REGION": "Germany"},
						{"COUNTRY_REGION": "Italy"},
					},
				}, nil
			},
		}
		uc := usecase.NewQuery(wh)

		out, err := uc.RunAdHoc(ctx, model.AdHocInput{Clicks: 1, SQL: model.DefaultCountriesSQL})
		gt.NoError(t, err).Required()
		gt.Equal(t, out.Error, "")
		gt.False(t, out.Empty)
		gt.Equal(t, out.Table.Columns, []string{"COUNTRY_REGION"})
		gt.Equal(t, out.Table.Len(), 2)
		gt.Equal(t, wh.QueryCalls()[0].Query, model.DefaultCountriesSQL)
	})

	t.Run("zero rows is a distinct outcome", func(t *testing.T) {
		wh := &mocks.WarehouseMock{
			QueryFunc: func(ctx context.Context, query string, args ...any) (*model.Table, error) {
				return &model.Table{Columns: []string{"X"}}, nil
			},
		}
		out, err := usecase.NewQuery(wh).RunAdHoc(ctx, model.AdHocInput{Clicks: 1, SQL: "SELECT X FROM T WHERE 1 = 0"})
		gt.NoError(t, err).Required()
		gt.True(t, out.Empty)
		gt.Nil(t, out.Table)
		gt.Equal(t, out.Error, "")
	})

	t.Run("warehouse error becomes a message", func(t *testing.T) {
		wh := &mocks.WarehouseMock{
			QueryFunc: func(ctx context.Context, query string, args ...any) (*model.Table, error) {
				cause := errors.New("002003 (42S02): SQL compilation error: Object 'NOPE' does not exist")
				return nil, goerr.Wrap(cause, "failed to execute query")
			},
		}
		out, err := usecase.NewQuery(wh).RunAdHoc(ctx, model.AdHocInput{Clicks: 3, SQL: "SELECT * FROM NOPE"})
		gt.NoError(t, err).Required()
		gt.Equal(t, out.Error, "Error executing query: 002003 (42S02): SQL compilation error: Object 'NOPE' does not exist")
		gt.Nil(t, out.Table)
	})

	t.Run("write statements never reach the warehouse", func(t *testing.T) {
		wh := &mocks.WarehouseMock{}
		out, err := usecase.NewQuery(wh).RunAdHoc(ctx, model.AdHocInput{Clicks: 1, SQL: "DROP TABLE ECDC_GLOBAL"})
		gt.NoError(t, err).Required()
		gt.Equal(t, out.Error, "Query rejected: only SELECT and WITH queries are allowed")
		gt.Equal(t, len(wh.QueryCalls()), 0)
	})

	t.Run("keywords inside literals reach the warehouse", func(t *testing.T) {
		wh := &mocks.WarehouseMock{
			QueryFunc: func(ctx context.Context, query string, args ...any) (*model.Table, error) {
				return &model.Table{
					Columns: []string{"COUNTRY_REGION"},
					Rows:    []map[string]any{{"COUNTRY_REGION": "Use"}},
				}, nil
			},
		}
		query := "SELECT COUNTRY_REGION FROM ECDC_GLOBAL WHERE COUNTRY_REGION = 'Use'"
		out, err := usecase.NewQuery(wh).RunAdHoc(ctx, model.AdHocInput{Clicks: 1, SQL: query})
		gt.NoError(t, err).Required()
		gt.Equal(t, out.Error, "")
		gt.NotNil(t, out.Table)
		gt.Equal(t, len(wh.QueryCalls()), 1)
		gt.Equal(t, wh.QueryCalls()[0].Query, query)
	})
}

func TestQuery_RunPreset(t *testing.T) {
	ctx := context.Background()
	presets := &model.QueryPresets{
		Presets: []model.QueryPreset{
			{
				Name:   "country_months",
				SQL:    "SELECT MONTH, CASES FROM MONTHLY WHERE COUNTRY_REGION = ? AND MONTH >= ?",
				Params: []string{"country", "since"},
			},
		},
	}

	wh := &mocks.WarehouseMock{
		QueryFunc: func(ctx context.Context, query string, args ...any) (*model.Table, error) {
			return &model.Table{
				Columns: []string{"MONTH", "CASES"},
				Rows:    []map[string]any{{"MONTH": "2020-03-01", "CASES": int64(100)}},
			}, nil
		},
	}
	uc := usecase.NewQuery(wh, usecase.WithPresets(model.DefaultQueryPresets().Merge(presets)))

	t.Run("binds params in declaration order", func(t *testing.T) {
		out, err := uc.RunPreset(ctx, "country_months", map[string]string{"since": "2020-03-01", "country": "Italy"})
		gt.NoError(t, err).Required()
		gt.Equal(t, out.Table.Len(), 1)

		call := wh.QueryCalls()[len(wh.QueryCalls())-1]
		gt.Equal(t, call.Args, []any{"Italy", "2020-03-01"})
	})

	t.Run("missing parameter", func(t *testing.T) {
		_, err := uc.RunPreset(ctx, "country_months", map[string]string{"country": "Italy"})
		gt.True(t, errors.Is(err, model.ErrMissingParameter))
	})

	t.Run("unknown preset", func(t *testing.T) {
		_, err := uc.RunPreset(ctx, "nope", nil)
		gt.True(t, errors.Is(err, model.ErrPresetNotFound))
	})

	t.Run("lists built-in and configured presets", func(t *testing.T) {
		list := uc.Presets(ctx)
		gt.Equal(t, len(list), 2)
		gt.Equal(t, list[0].Name.String(), "countries")
	})
}

func TestQuery_SQLiteWarehouse(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "adhoc.db")

	db, err := sql.Open("sqlite", path)
	gt.NoError(t, err).Required()
	_, err = db.Exec(`CREATE TABLE ECDC_GLOBAL (COUNTRY_REGION TEXT, CASES INTEGER)`)
	gt.NoError(t, err).Required()
	_, err = db.Exec(`INSERT INTO ECDC_GLOBAL VALUES ('Italy', 2), ('Germany', 5), ('Italy', 3)`)
	gt.NoError(t, err).Required()
	gt.NoError(t, db.Close())

	wh, err := warehouse.New(warehouse.Config{Driver: warehouse.DriverSQLite, DSN: path})
	gt.NoError(t, err).Required()
	uc := usecase.NewQuery(wh)

	t.Run("default query", func(t *testing.T) {
		out, err := uc.RunAdHoc(ctx, model.AdHocInput{Clicks: 1, SQL: model.DefaultCountriesSQL})
		gt.NoError(t, err).Required()
		gt.Equal(t, out.Table.Len(), 2)
		gt.Equal(t, out.Table.Rows[0]["COUNTRY_REGION"], any("Germany"))
	})

	t.Run("driver error text is kept", func(t *testing.T) {
		out, err := uc.RunAdHoc(ctx, model.AdHocInput{Clicks: 1, SQL: "SELECT * FROM MISSING_TABLE"})
		gt.NoError(t, err).Required()
		gt.S(t, out.Error).Contains("Error executing query: ")
		gt.S(t, out.Error).Contains("MISSING_TABLE")
	})
}
