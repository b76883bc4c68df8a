package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hidrica/drought-cost-engine/pkg/models"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var postgresFS embed.FS

// PostgresStore implements Store interface using PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{
		db:  db,
		dsn: dsn,
	}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations
func (s *PostgresStore) migrate() error {
	schema, err := postgresFS.ReadFile("migrations/001_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// GetZone retrieves a zone by ID
func (s *PostgresStore) GetZone(ctx context.Context, id string) (*models.Zone, error) {
	query := `
		SELECT id, name, country_code, state_code,
			energy_price_usd_mwh, fuel_price_usd_mmbtu,
			current_spi_6m, trend, active
		FROM zones
		WHERE id = $1
	`

	var zone models.Zone
	var energyPrice, fuelPrice sql.NullFloat64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&zone.ID, &zone.Name, &zone.CountryCode, &zone.StateCode,
		&energyPrice, &fuelPrice,
		&zone.CurrentSPI6M, &zone.Trend, &zone.Active,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("zone %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if energyPrice.Valid {
		zone.EnergyPriceUSDMWh = &energyPrice.Float64
	}
	if fuelPrice.Valid {
		zone.FuelPriceUSDMMBtu = &fuelPrice.Float64
	}

	return &zone, nil
}

// ListZones retrieves zones, optionally only active ones
func (s *PostgresStore) ListZones(ctx context.Context, activeOnly bool) ([]*models.Zone, error) {
	query := `
		SELECT id, name, country_code, state_code,
			energy_price_usd_mwh, fuel_price_usd_mmbtu,
			current_spi_6m, trend, active
		FROM zones
	`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*models.Zone
	for rows.Next() {
		var zone models.Zone
		var energyPrice, fuelPrice sql.NullFloat64

		err := rows.Scan(
			&zone.ID, &zone.Name, &zone.CountryCode, &zone.StateCode,
			&energyPrice, &fuelPrice,
			&zone.CurrentSPI6M, &zone.Trend, &zone.Active,
		)
		if err != nil {
			return nil, err
		}

		if energyPrice.Valid {
			zone.EnergyPriceUSDMWh = &energyPrice.Float64
		}
		if fuelPrice.Valid {
			zone.FuelPriceUSDMMBtu = &fuelPrice.Float64
		}

		zones = append(zones, &zone)
	}

	return zones, rows.Err()
}

// ListPlants retrieves all plants registered in a zone
func (s *PostgresStore) ListPlants(ctx context.Context, zoneID string) ([]models.PowerPlant, error) {
	query := `
		SELECT id, zone_id, name, plant_type, capacity_mw,
			water_dependency, cooling_type, operational_status
		FROM power_plants
		WHERE zone_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, zoneID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []models.PowerPlant
	for rows.Next() {
		var p models.PowerPlant
		err := rows.Scan(
			&p.ID, &p.ZoneID, &p.Name, &p.PlantType, &p.CapacityMW,
			&p.WaterDependency, &p.CoolingType, &p.OperationalStatus,
		)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}

	return plants, rows.Err()
}

// SaveSimulation persists a simulation run summary plus the full result
func (s *PostgresStore) SaveSimulation(ctx context.Context, rec *models.SimulationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO simulation_runs (
			id, zone_id, projection_days, plants_analyzed,
			selection_mode, price_source,
			no_action_cost_usd, with_action_cost_usd,
			savings_usd, savings_pct, result, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.ZoneID, rec.ProjectionDays, rec.PlantsAnalyzed,
		rec.SelectionMode, rec.PriceSource,
		rec.NoActionCostUSD, rec.WithActionCostUSD,
		rec.SavingsUSD, rec.SavingsPct, rec.Result, rec.CreatedAt,
	)

	return err
}

// GetSimulation retrieves a simulation run by ID
func (s *PostgresStore) GetSimulation(ctx context.Context, id string) (*models.SimulationRecord, error) {
	query := `
		SELECT id, zone_id, projection_days, plants_analyzed,
			selection_mode, price_source,
			no_action_cost_usd, with_action_cost_usd,
			savings_usd, savings_pct, result, created_at
		FROM simulation_runs
		WHERE id = $1
	`

	var rec models.SimulationRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.ZoneID, &rec.ProjectionDays, &rec.PlantsAnalyzed,
		&rec.SelectionMode, &rec.PriceSource,
		&rec.NoActionCostUSD, &rec.WithActionCostUSD,
		&rec.SavingsUSD, &rec.SavingsPct, &rec.Result, &rec.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("simulation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// ListSimulations retrieves recent runs for a zone
func (s *PostgresStore) ListSimulations(ctx context.Context, zoneID string, limit int) ([]*models.SimulationRecord, error) {
	query := `
		SELECT id, zone_id, projection_days, plants_analyzed,
			selection_mode, price_source,
			no_action_cost_usd, with_action_cost_usd,
			savings_usd, savings_pct, result, created_at
		FROM simulation_runs
		WHERE zone_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, zoneID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.SimulationRecord
	for rows.Next() {
		var rec models.SimulationRecord
		err := rows.Scan(
			&rec.ID, &rec.ZoneID, &rec.ProjectionDays, &rec.PlantsAnalyzed,
			&rec.SelectionMode, &rec.PriceSource,
			&rec.NoActionCostUSD, &rec.WithActionCostUSD,
			&rec.SavingsUSD, &rec.SavingsPct, &rec.Result, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// GetZoneStats aggregates run history for a zone over a trailing period
func (s *PostgresStore) GetZoneStats(ctx context.Context, zoneID string, days int) (*models.ZoneStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(savings_usd), 0),
			COALESCE(AVG(savings_pct), 0),
			COUNT(*) FILTER (WHERE price_source LIKE 'fallback%'),
			MAX(created_at),
			COALESCE(MAX(no_action_cost_usd), 0)
		FROM simulation_runs
		WHERE zone_id = $1
			AND created_at > NOW() - make_interval(days => $2)
	`

	stats := &models.ZoneStats{ZoneID: zoneID, PeriodDays: days}
	var lastRun sql.NullTime

	err := s.db.QueryRowContext(ctx, query, zoneID, days).Scan(
		&stats.Runs, &stats.TotalSavingsUSD, &stats.AvgSavingsPct,
		&stats.FallbackRuns, &lastRun, &stats.WorstNoActionUSD,
	)
	if err != nil {
		return nil, err
	}

	if lastRun.Valid {
		stats.LastRunAt = lastRun.Time
	}

	return stats, nil
}

// GetSavingsTrend aggregates savings per day for a zone
func (s *PostgresStore) GetSavingsTrend(ctx context.Context, zoneID string, days int) ([]models.SavingsPoint, error) {
	query := `
		SELECT DATE_TRUNC('day', created_at) AS day,
			COUNT(*),
			COALESCE(SUM(savings_usd), 0)
		FROM simulation_runs
		WHERE zone_id = $1
			AND created_at > NOW() - make_interval(days => $2)
		GROUP BY day
		ORDER BY day
	`

	rows, err := s.db.QueryContext(ctx, query, zoneID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.SavingsPoint
	for rows.Next() {
		var p models.SavingsPoint
		if err := rows.Scan(&p.Date, &p.Runs, &p.SavingsUSD); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// LogAudit appends an entry to the audit trail
func (s *PostgresStore) LogAudit(ctx context.Context, entry *models.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO audit_log (id, run_id, zone_id, event, detail, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.RunID, entry.ZoneID, entry.Event, entry.Detail, entry.CreatedAt,
	)

	return err
}

// GetAuditLog retrieves audit entries for a run
func (s *PostgresStore) GetAuditLog(ctx context.Context, runID string) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, COALESCE(run_id, ''), zone_id, event, COALESCE(detail, ''), created_at
		FROM audit_log
		WHERE run_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		err := rows.Scan(
			&entry.ID, &entry.RunID, &entry.ZoneID, &entry.Event, &entry.Detail, &entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
