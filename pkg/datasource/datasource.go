package datasource

import (
	"context"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// ObservationSource defines the interface for reading drought observations
type ObservationSource interface {
	CurrentSPI(ctx context.Context, zoneID string) (float64, error)
	SPISeries(ctx context.Context, zoneID string, window time.Duration) ([]models.SPIObservation, error)
	IsAvailable(ctx context.Context) bool
	Name() string
}

type Config struct {
	ObservationsURL string
	Timeout         time.Duration
}
