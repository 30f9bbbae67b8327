package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"github.com/secmon-lab/covidash/pkg/usecase"
)

const defaultCommentLimit = 20

// DashboardHandler serves the country views and comment submissions
type DashboardHandler struct {
	uc usecase.DashboardUseCase
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(uc usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

type selectRequest struct {
	Country     string `json:"country"`
	NClicks     int    `json:"n_clicks"`
	PrevNClicks int    `json:"prev_n_clicks"`
	Comment     string `json:"comment"`
}

type commentsResponse struct {
	Country  types.CountryName        `json:"country"`
	Comments []*model.CommentDocument `json:"comments"`
}

// HandleCountries returns the dropdown options
func (h *DashboardHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.uc.Countries(r.Context()))
}

// HandleView returns charts and summary of a country
func (h *DashboardHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	country := countryParam(r)

	view, err := h.uc.View(r.Context(), country)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// HandleSelect recomputes the view and stores the comment when the submit counter advanced
func (h *DashboardHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	out, err := h.uc.Select(r.Context(), model.SelectionInput{
		Country:      types.CountryName(req.Country),
		SubmitClicks: req.NClicks,
		PrevClicks:   req.PrevNClicks,
		Comment:      req.Comment,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

// HandleListComments returns stored comments of a country, newest first
func (h *DashboardHandler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	country := countryParam(r)

	limit := defaultCommentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, r, goerr.New("invalid limit", goerr.V("limit", v)), http.StatusBadRequest)
			return
		}
		limit = n
	}

	docs, err := h.uc.ListComments(r.Context(), country, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*model.CommentDocument{}
	}
	writeJSON(w, r, http.StatusOK, commentsResponse{Country: country, Comments: docs})
}

// countryParam returns the decoded {country} path segment
func countryParam(r *http.Request) types.CountryName {
	raw := chi.URLParam(r, "country")
	if v, err := url.PathUnescape(raw); err == nil {
		return types.CountryName(v)
	}
	return types.CountryName(raw)
}
