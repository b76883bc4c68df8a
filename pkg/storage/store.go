package storage

import (
	"context"
	"errors"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// ErrNotFound reports a lookup miss. Callers match with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for persistent storage
type Store interface {
	GetZone(ctx context.Context, id string) (*models.Zone, error)
	ListZones(ctx context.Context, activeOnly bool) ([]*models.Zone, error)
	ListPlants(ctx context.Context, zoneID string) ([]models.PowerPlant, error)

	SaveSimulation(ctx context.Context, rec *models.SimulationRecord) error
	GetSimulation(ctx context.Context, id string) (*models.SimulationRecord, error)
	ListSimulations(ctx context.Context, zoneID string, limit int) ([]*models.SimulationRecord, error)

	// Analytics methods
	GetZoneStats(ctx context.Context, zoneID string, days int) (*models.ZoneStats, error)
	GetSavingsTrend(ctx context.Context, zoneID string, days int) ([]models.SavingsPoint, error)

	LogAudit(ctx context.Context, entry *models.AuditEntry) error
	GetAuditLog(ctx context.Context, runID string) ([]*models.AuditEntry, error)

	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	URL     string
	Timeout int
}
