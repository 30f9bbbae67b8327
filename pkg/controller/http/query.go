package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"github.com/secmon-lab/covidash/pkg/usecase"
)

// QueryHandler serves free-text and preset queries
type QueryHandler struct {
	uc usecase.QueryUseCase
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(uc usecase.QueryUseCase) *QueryHandler {
	return &QueryHandler{uc: uc}
}

type adHocRequest struct {
	NClicks int    `json:"n_clicks"`
	Query   string `json:"query"`
}

type presetRequest struct {
	Params map[string]string `json:"params"`
}

type presetsResponse struct {
	Presets []model.QueryPreset `json:"presets"`
}

// HandleRunAdHoc runs free-text SQL. An unclicked button yields 204 No Content.
func (h *QueryHandler) HandleRunAdHoc(w http.ResponseWriter, r *http.Request) {
	var req adHocRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	out, err := h.uc.RunAdHoc(r.Context(), model.AdHocInput{Clicks: req.NClicks, SQL: req.Query})
	if errors.Is(err, model.ErrNoUpdate) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

// HandlePresets lists the available presets
func (h *QueryHandler) HandlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, presetsResponse{Presets: h.uc.Presets(r.Context())})
}

// HandleRunPreset runs a preset with the parameters in the body
func (h *QueryHandler) HandleRunPreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, r, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}
	}

	name := types.PresetName(chi.URLParam(r, "name"))
	out, err := h.uc.RunPreset(r.Context(), name, req.Params)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}
