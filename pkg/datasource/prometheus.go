package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// seriesStep is the resolution of SPI range queries. The hydrology
// pipeline publishes one sample per day.
const seriesStep = 24 * time.Hour

// PrometheusSource reads SPI observations from a Prometheus-compatible
// hydrology TSDB
type PrometheusSource struct {
	client v1.API
	url    string
}

func NewPrometheusSource(url string) (*PrometheusSource, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create observations client: %w", err)
	}

	return &PrometheusSource{
		client: v1.NewAPI(client),
		url:    url,
	}, nil
}

// CurrentSPI returns the latest 6-month SPI sample for a zone
func (p *PrometheusSource) CurrentSPI(ctx context.Context, zoneID string) (float64, error) {
	query := fmt.Sprintf(`drought_spi_6m{zone_id="%s"}`, zoneID)
	value, err := p.querySingle(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("SPI query failed: %w", err)
	}
	return value, nil
}

// SPISeries returns daily SPI samples over the trailing window, oldest
// first
func (p *PrometheusSource) SPISeries(ctx context.Context, zoneID string, window time.Duration) ([]models.SPIObservation, error) {
	query := fmt.Sprintf(`drought_spi_6m{zone_id="%s"}`, zoneID)
	end := time.Now()

	result, warnings, err := p.client.QueryRange(ctx, query, v1.Range{
		Start: end.Add(-window),
		End:   end,
		Step:  seriesStep,
	})
	if err != nil {
		return nil, fmt.Errorf("SPI range query failed: %w", err)
	}
	if len(warnings) > 0 {
		fmt.Printf("[WARN] Observations: %v\n", warnings)
	}

	matrix, ok := result.(model.Matrix)
	if !ok || len(matrix) == 0 {
		return nil, fmt.Errorf("no SPI series for zone %s", zoneID)
	}

	var series []models.SPIObservation
	for _, pair := range matrix[0].Values {
		series = append(series, models.SPIObservation{
			Timestamp: pair.Timestamp.Time(),
			Value:     float64(pair.Value),
		})
	}
	return series, nil
}

func (p *PrometheusSource) querySingle(ctx context.Context, query string) (float64, error) {
	result, warnings, err := p.client.Query(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}

	if len(warnings) > 0 {
		fmt.Printf("[WARN] Observations: %v\n", warnings)
	}

	vector, ok := result.(model.Vector)
	if !ok || len(vector) == 0 {
		return 0, fmt.Errorf("no data for query: %s", query)
	}
	return float64(vector[0].Value), nil
}

func (p *PrometheusSource) IsAvailable(ctx context.Context) bool {
	_, _, err := p.client.Query(ctx, "up", time.Now())
	return err == nil
}

func (p *PrometheusSource) Name() string {
	return "Prometheus"
}
