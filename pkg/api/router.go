// Package api exposes the drought engine over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hidrica/drought-cost-engine/pkg/models"
	"github.com/hidrica/drought-cost-engine/pkg/service"
)

// Service is the slice of the service layer the handlers call
type Service interface {
	GetZoneRisk(ctx context.Context, zoneID string) (*models.RiskSnapshot, error)
	GetRecommendedActions(ctx context.Context, zoneID string, profile models.Profile) (*service.ActionPlan, error)
	GetPrices(ctx context.Context, region string) *models.PriceQuote
	RunSimulation(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error)
	Ping(ctx context.Context) error
}

// NewRouter builds the HTTP routing table. metricsHandler serves the
// Prometheus exposition endpoint; pass nil to omit it.
func NewRouter(svc Service, metricsHandler http.Handler) *mux.Router {
	h := &Handlers{svc: svc}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods("GET")
	}
	r.HandleFunc("/zones/{id}/risk", h.ZoneRisk).Methods("GET")
	r.HandleFunc("/zones/{id}/actions", h.ZoneActions).Methods("GET")
	r.HandleFunc("/zones/{id}/simulation", h.Simulate).Methods("POST")
	r.HandleFunc("/prices/{region}", h.Prices).Methods("GET")

	return r
}
