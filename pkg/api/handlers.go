package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/hidrica/drought-cost-engine/pkg/models"
	"github.com/hidrica/drought-cost-engine/pkg/storage"
)

// Error body codes so clients can tell lookup misses apart from rosters
// that exist but hold no usable plants
const (
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeNoPlants       = "no_plants_available"
	codeInternal       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Handlers carries the service the routes delegate to
type Handlers struct {
	svc Service
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "ts": time.Now().UTC()})
}

func (h *Handlers) ZoneRisk(w http.ResponseWriter, r *http.Request) {
	zoneID := mux.Vars(r)["id"]

	snap, err := h.svc.GetZoneRisk(r.Context(), zoneID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) ZoneActions(w http.ResponseWriter, r *http.Request) {
	zoneID := mux.Vars(r)["id"]
	profile := models.Profile(r.URL.Query().Get("profile"))

	plan, err := h.svc.GetRecommendedActions(r.Context(), zoneID, profile)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handlers) Simulate(w http.ResponseWriter, r *http.Request) {
	zoneID := mux.Vars(r)["id"]

	var req models.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error(), Code: codeInvalidRequest})
		return
	}
	// The path names the zone; the body cannot redirect the run elsewhere.
	req.ZoneID = zoneID

	result, err := h.svc.RunSimulation(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) Prices(w http.ResponseWriter, r *http.Request) {
	region := mux.Vars(r)["region"]
	writeJSON(w, http.StatusOK, h.svc.GetPrices(r.Context(), region))
}

// writeError maps service errors onto HTTP statuses
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidProjectionWindow),
		errors.Is(err, models.ErrUnknownActionID):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeInvalidRequest})
	case errors.Is(err, models.ErrNoPlantsAvailable):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeNoPlants})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error(), Code: codeNotFound})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), Code: codeInternal})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
