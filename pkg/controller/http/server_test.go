package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	controller "github.com/secmon-lab/covidash/pkg/controller/http"
	"github.com/secmon-lab/covidash/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/repository"
	"github.com/secmon-lab/covidash/pkg/usecase"
)

var testSecret = []byte(strings.Repeat("k", 32))

func month(m time.Month) time.Time {
	return time.Date(2020, m, 1, 0, 0, 0, 0, time.UTC)
}

func newTestDataset() *model.Dataset {
	return model.NewDataset([]model.Record{
		{Month: month(3), ISO: "IT", CountryRegion: "Italy", Cases: 105792, Deaths: 12428},
		{Month: month(1), ISO: "IT", CountryRegion: "Italy", Cases: 3, Deaths: 0},
		{Month: month(2), ISO: "IT", CountryRegion: "Italy", Cases: 1125, Deaths: 29},
		{Month: month(1), ISO: "GB", CountryRegion: "United Kingdom", Cases: 2, Deaths: 0},
	})
}

type testEnv struct {
	server *controller.Server
	repo   *repository.Memory
	wh     *mocks.WarehouseMock
	auth   usecase.AuthUseCase
}

func newTestEnv(t *testing.T, withAuth bool, opts ...controller.ConfigOption) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo := repository.NewMemory()
	wh := &mocks.WarehouseMock{
		QueryFunc: func(ctx context.Context, query string, args ...any) (*model.Table, error) {
			return &model.Table{
				Columns: []string{"COUNTRY_REGION"},
				Rows:    []map[string]any{{"COUNTRY_REGION": "Italy"}},
			}, nil
		},
	}

	var authUC usecase.AuthUseCase
	if withAuth {
		var err error
		authUC, err = usecase.NewAuth(testSecret)
		gt.NoError(t, err).Required()
	}

	opts = append([]controller.ConfigOption{controller.WithFrontendFS(http.Dir("testdata/spa"))}, opts...)
	cfg := controller.NewConfig(":0", opts...)
	uc := controller.NewUseCases(
		usecase.NewDashboard(newTestDataset(), repo),
		usecase.NewQuery(wh),
		authUC,
	)

	server, err := controller.NewServer(ctx, cfg, uc)
	gt.NoError(t, err).Required()

	return &testEnv{server: server, repo: repo, wh: wh, auth: authUC}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.server.Handler.ServeHTTP(w, req)
	return w
}

func (e *testEnv) token(t *testing.T, scopes ...string) map[string]string {
	t.Helper()
	token, err := e.auth.IssueToken(context.Background(), "analyst", scopes, time.Hour)
	gt.NoError(t, err).Required()
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestServerHealthCheck(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/health", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("healthy")
	gt.S(t, w.Body.String()).Contains("covidash")
}

func TestServerMetrics(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/metrics", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("covidash_dataset_records")
}

func TestServerRedirectsToBasePath(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/", nil, nil)
	gt.Equal(t, w.Code, http.StatusFound)
	gt.Equal(t, w.Header().Get("Location"), "/dash/")

	w = env.do(t, http.MethodGet, "/dash", nil, nil)
	gt.Equal(t, w.Code, http.StatusMovedPermanently)
	gt.Equal(t, w.Header().Get("Location"), "/dash/")
}

func TestServerServesFrontend(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/dash/", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("<html")

	w = env.do(t, http.MethodGet, "/dash/static/app.js", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains("console.log")
}

func TestServerCustomBasePath(t *testing.T) {
	env := newTestEnv(t, false, controller.WithBasePath("covid/"))

	w := env.do(t, http.MethodGet, "/covid/api/countries", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)

	w = env.do(t, http.MethodGet, "/dash/api/countries", nil, nil)
	gt.Equal(t, w.Code, http.StatusNotFound)
}

func TestCountries(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/dash/api/countries", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)

	var resp model.CountryOptions
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	gt.Equal(t, len(resp.Countries), 2)
	gt.Equal(t, resp.Default.String(), "Italy")
}

func TestView(t *testing.T) {
	env := newTestEnv(t, false)

	t.Run("known country", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/dash/api/countries/Italy/view", nil, nil)
		gt.Equal(t, w.Code, http.StatusOK)

		var resp struct {
			Country     string          `json:"country"`
			DeathsChart json.RawMessage `json:"deaths_chart"`
			Summary     []map[string]any
		}
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		gt.Equal(t, resp.Country, "Italy")
		gt.Equal(t, len(resp.Summary), 3)
		gt.S(t, string(resp.DeathsChart)).Contains("COVID-19 Deaths for Italy")
		gt.S(t, string(resp.DeathsChart)).Contains(`"barmode":"group"`)
	})

	t.Run("escaped country name", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/dash/api/countries/United%20Kingdom/view", nil, nil)
		gt.Equal(t, w.Code, http.StatusOK)
	})

	t.Run("unknown country", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/dash/api/countries/Atlantis/view", nil, nil)
		gt.Equal(t, w.Code, http.StatusNotFound)
		gt.S(t, w.Body.String()).Contains("error")
	})
}

func TestSelect(t *testing.T) {
	env := newTestEnv(t, false)

	t.Run("dropdown change without click", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/select", map[string]any{
			"country": "Italy", "n_clicks": 0, "prev_n_clicks": 0, "comment": "pending",
		}, nil)
		gt.Equal(t, w.Code, http.StatusOK)
		gt.False(t, strings.Contains(w.Body.String(), "comment_added"))
	})

	t.Run("click stores a comment", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/select", map[string]any{
			"country": "Italy", "n_clicks": 1, "prev_n_clicks": 0, "comment": "first wave",
		}, nil)
		gt.Equal(t, w.Code, http.StatusOK)

		var resp struct {
			CommentAdded *model.CommentDocument `json:"comment_added"`
		}
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		gt.NotNil(t, resp.CommentAdded)
		gt.Equal(t, resp.CommentAdded.Comments[0].Comment, "first wave")
	})

	t.Run("same counter again does not store", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/select", map[string]any{
			"country": "United Kingdom", "n_clicks": 1, "prev_n_clicks": 1, "comment": "first wave",
		}, nil)
		gt.Equal(t, w.Code, http.StatusOK)

		w = env.do(t, http.MethodGet, "/dash/api/countries/Italy/comments", nil, nil)
		gt.Equal(t, w.Code, http.StatusOK)

		var resp struct {
			Comments []*model.CommentDocument `json:"comments"`
		}
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		gt.Equal(t, len(resp.Comments), 1)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/dash/api/select", strings.NewReader("{"))
		w := httptest.NewRecorder()
		env.server.Handler.ServeHTTP(w, req)
		gt.Equal(t, w.Code, http.StatusBadRequest)
	})
}

func TestListComments_InvalidLimit(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/dash/api/countries/Italy/comments?limit=abc", nil, nil)
	gt.Equal(t, w.Code, http.StatusBadRequest)

	w = env.do(t, http.MethodGet, "/dash/api/countries/Atlantis/comments", nil, nil)
	gt.Equal(t, w.Code, http.StatusNotFound)
}

func TestAdHocQuery(t *testing.T) {
	t.Run("disabled without a token secret", func(t *testing.T) {
		env := newTestEnv(t, false)
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 1, "query": "SELECT 1"}, nil)
		gt.True(t, w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed)
		gt.Equal(t, len(env.wh.QueryCalls()), 0)
	})

	env := newTestEnv(t, true)

	t.Run("missing token", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 1, "query": "SELECT 1"}, nil)
		gt.Equal(t, w.Code, http.StatusUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 1, "query": "SELECT 1"},
			map[string]string{"Authorization": "Bearer garbage"})
		gt.Equal(t, w.Code, http.StatusUnauthorized)
	})

	t.Run("token without query scope", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 1, "query": "SELECT 1"}, env.token(t, "read"))
		gt.Equal(t, w.Code, http.StatusForbidden)
	})

	t.Run("zero clicks is no content", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 0, "query": "SELECT 1"}, env.token(t, model.ScopeQuery))
		gt.Equal(t, w.Code, http.StatusNoContent)
	})

	t.Run("runs the query", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 1, "query": model.DefaultCountriesSQL}, env.token(t, model.ScopeQuery))
		gt.Equal(t, w.Code, http.StatusOK)

		var out model.QueryOutcome
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		gt.Equal(t, out.Table.Columns, []string{"COUNTRY_REGION"})
	})

	t.Run("rejected query is reported in the outcome", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 2, "query": "DELETE FROM ECDC_GLOBAL"}, env.token(t, model.ScopeQuery))
		gt.Equal(t, w.Code, http.StatusOK)
		gt.S(t, w.Body.String()).Contains("Query rejected")
	})
}

func TestAdHocQuery_RateLimit(t *testing.T) {
	env := newTestEnv(t, true, controller.WithQueryRateLimit(2, time.Minute))
	header := env.token(t, model.ScopeQuery)

	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": i + 1, "query": "SELECT 1"}, header)
		gt.Equal(t, w.Code, http.StatusOK)
	}

	w := env.do(t, http.MethodPost, "/dash/api/query", map[string]any{"n_clicks": 3, "query": "SELECT 1"}, header)
	gt.Equal(t, w.Code, http.StatusTooManyRequests)
}

func TestPresets(t *testing.T) {
	env := newTestEnv(t, false)

	w := env.do(t, http.MethodGet, "/dash/api/presets", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.S(t, w.Body.String()).Contains(`"countries"`)

	w = env.do(t, http.MethodPost, "/dash/api/presets/countries", nil, nil)
	gt.Equal(t, w.Code, http.StatusOK)
	gt.Equal(t, env.wh.QueryCalls()[0].Query, model.DefaultCountriesSQL)

	w = env.do(t, http.MethodPost, "/dash/api/presets/nope", map[string]any{"params": map[string]string{}}, nil)
	gt.Equal(t, w.Code, http.StatusNotFound)
}
