package service

import (
	"context"
	"fmt"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// DefaultHistoryLimit bounds history listings when the caller passes no limit
const DefaultHistoryLimit = 20

// ListZones returns the zone roster
func (s *Service) ListZones(ctx context.Context, activeOnly bool) ([]*models.Zone, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return s.store.ListZones(ctx, activeOnly)
}

// ListPlants returns the plant roster for a zone
func (s *Service) ListPlants(ctx context.Context, zoneID string) ([]models.PowerPlant, error) {
	if _, err := s.getZone(ctx, zoneID); err != nil {
		return nil, err
	}
	return s.store.ListPlants(ctx, zoneID)
}

// GetSimulation loads one persisted run
func (s *Service) GetSimulation(ctx context.Context, id string) (*models.SimulationRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return s.store.GetSimulation(ctx, id)
}

// ListSimulations returns recent runs for a zone, newest first
func (s *Service) ListSimulations(ctx context.Context, zoneID string, limit int) ([]*models.SimulationRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.ListSimulations(ctx, zoneID, limit)
}

// GetZoneStats aggregates persisted runs for a zone over a trailing window
func (s *Service) GetZoneStats(ctx context.Context, zoneID string, days int) (*models.ZoneStats, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if days <= 0 {
		days = 30
	}
	return s.store.GetZoneStats(ctx, zoneID, days)
}

// GetSavingsTrend returns the per-day savings series for a zone
func (s *Service) GetSavingsTrend(ctx context.Context, zoneID string, days int) ([]models.SavingsPoint, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if days <= 0 {
		days = 30
	}
	return s.store.GetSavingsTrend(ctx, zoneID, days)
}

// GetAuditLog returns the audit trail for one run
func (s *Service) GetAuditLog(ctx context.Context, runID string) ([]*models.AuditEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	return s.store.GetAuditLog(ctx, runID)
}

// Ping reports storage health
func (s *Service) Ping(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	return s.store.Ping(ctx)
}
