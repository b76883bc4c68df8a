// Package service wires the drought engine together: zone state from
// storage, live observations, price resolution, heuristics, simulation,
// persistence, metrics and alerting behind one API.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hidrica/drought-cost-engine/pkg/actions"
	"github.com/hidrica/drought-cost-engine/pkg/alerts"
	"github.com/hidrica/drought-cost-engine/pkg/brief"
	"github.com/hidrica/drought-cost-engine/pkg/config"
	"github.com/hidrica/drought-cost-engine/pkg/datasource"
	"github.com/hidrica/drought-cost-engine/pkg/heuristics"
	"github.com/hidrica/drought-cost-engine/pkg/metrics"
	"github.com/hidrica/drought-cost-engine/pkg/models"
	"github.com/hidrica/drought-cost-engine/pkg/pricing"
	"github.com/hidrica/drought-cost-engine/pkg/risk"
	"github.com/hidrica/drought-cost-engine/pkg/simulation"
	"github.com/hidrica/drought-cost-engine/pkg/storage"
)

// Audit event names persisted alongside simulation runs
const (
	EventSimulationCompleted = "simulation_completed"
	EventPriceFallback       = "price_fallback"
	EventEscalationApplied   = "escalation_applied"
	EventAlertPublished      = "alert_published"
)

// trendWindow is how far back the observation series is read for the
// trend regression
const trendWindow = 90 * 24 * time.Hour

// AlertPublisher is the slice of the alert pipeline the service needs
type AlertPublisher interface {
	Publish(ctx context.Context, alert alerts.Alert) error
}

// ActionPlan is the recommendation response for a zone
type ActionPlan struct {
	Risk            *models.RiskSnapshot      `json:"risk"`
	Fired           []heuristics.Trigger      `json:"fired"`
	Escalated       bool                      `json:"escalated"`
	Actions         []models.ActionParameters `json:"actions"`
	TotalEffectDays float64                   `json:"total_effect_days"`
}

// Deps carries the collaborators a Service runs with. Store is required;
// everything else degrades gracefully when nil.
type Deps struct {
	Store         storage.Store
	Source        datasource.ObservationSource
	Resolver      *pricing.Resolver
	Heuristics    *heuristics.Engine
	Parameterizer *actions.Parameterizer
	Enricher      *brief.Enricher
	Alerts        AlertPublisher
	Metrics       *metrics.Metrics
	Config        *config.Config
}

// Service implements the drought cost engine operations
type Service struct {
	store    storage.Store
	source   datasource.ObservationSource
	resolver *pricing.Resolver
	engine   *heuristics.Engine
	params   *actions.Parameterizer
	enricher *brief.Enricher
	alerts   AlertPublisher
	metrics  *metrics.Metrics
	cfg      *config.Config

	now     func() time.Time
	verbose bool
}

// New creates a service from its dependencies
func New(deps Deps) *Service {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	engine := deps.Heuristics
	if engine == nil {
		engine = heuristics.NewEngine(cfg.EscalationThreshold)
	}
	params := deps.Parameterizer
	if params == nil {
		params = actions.NewParameterizer(cfg.DefaultImprovement)
	}
	enricher := deps.Enricher
	if enricher == nil {
		enricher = brief.NewEnricher(nil, cfg.Verbose)
	}
	resolver := deps.Resolver
	if resolver == nil {
		resolver = pricing.NewResolver(cfg.PriceFeedURL, cfg.PriceFeedTimeout, cfg.PriceCacheTTL)
	}
	return &Service{
		store:    deps.Store,
		source:   deps.Source,
		resolver: resolver,
		engine:   engine,
		params:   params,
		enricher: enricher,
		alerts:   deps.Alerts,
		metrics:  deps.Metrics,
		cfg:      cfg,
		now:      time.Now,
		verbose:  cfg.Verbose,
	}
}

// SetClock overrides the service clock for tests
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// GetZoneRisk returns the current risk snapshot for a zone. Live
// observations take precedence over the stored zone state; when the
// observation source is down the stored state carries the snapshot.
func (s *Service) GetZoneRisk(ctx context.Context, zoneID string) (*models.RiskSnapshot, error) {
	zone, err := s.getZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	snap, err := s.buildSnapshot(ctx, zone)
	if err != nil {
		return nil, err
	}
	s.metrics.SetZoneRisk(zone.ID, snap.RiskLevel.Severity())
	return snap, nil
}

// GetRecommendedActions evaluates the heuristics for a zone and turns the
// fired rules into parameterized actions for the given audience profile.
func (s *Service) GetRecommendedActions(ctx context.Context, zoneID string, profile models.Profile) (*ActionPlan, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	zone, err := s.getZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	snap, err := s.buildSnapshot(ctx, zone)
	if err != nil {
		return nil, err
	}
	s.metrics.SetZoneRisk(zone.ID, snap.RiskLevel.Severity())

	eval := s.engine.Evaluate(snap.SPI6M, snap.DaysToCritical)
	for _, trig := range eval.Fired {
		s.metrics.HeuristicFired(trig.ID)
	}

	sel, err := s.params.FromEvaluation(eval, profile)
	if err != nil {
		return nil, err
	}
	return &ActionPlan{
		Risk:            snap,
		Fired:           eval.Fired,
		Escalated:       eval.Escalated,
		Actions:         sel.Actions,
		TotalEffectDays: sel.TotalEffectDays,
	}, nil
}

// GetPrices resolves the commodity prices for a region. Never fails; the
// fallback chain always yields a usable quote.
func (s *Service) GetPrices(ctx context.Context, region string) *models.PriceQuote {
	quote := s.resolver.ResolveRegion(ctx, region)
	if quote.IsFallback() {
		s.metrics.PriceFallback(region)
	}
	return quote
}

// RunSimulation executes the full pipeline for one request: refresh zone
// state, select actions, resolve prices, project both cost scenarios, then
// persist, alert and optionally enrich the result.
func (s *Service) RunSimulation(ctx context.Context, req models.SimulationRequest) (*models.SimulationResult, error) {
	start := s.now()

	if req.ZoneID == "" {
		return nil, fmt.Errorf("zone id is required: %w", models.ErrInvalidInput)
	}
	if err := validateProfile(req.Profile); err != nil {
		return nil, err
	}

	zone, err := s.getZone(ctx, req.ZoneID)
	if err != nil {
		return nil, err
	}
	snap, err := s.buildSnapshot(ctx, zone)
	if err != nil {
		return nil, err
	}
	// The snapshot is the freshest view of the zone; the projection
	// starts from it rather than from the stored row.
	zone.CurrentSPI6M = snap.SPI6M
	zone.Trend = snap.Trend

	plants, err := s.store.ListPlants(ctx, zone.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants for zone %s: %w", zone.ID, err)
	}
	plants = filterPlants(plants, req.PowerPlantIDs)

	sel, eval, err := s.selectActions(snap, req)
	if err != nil {
		return nil, err
	}
	for _, trig := range eval.Fired {
		s.metrics.HeuristicFired(trig.ID)
	}

	quote := s.resolver.Resolve(ctx, zone)
	if quote.IsFallback() {
		s.metrics.PriceFallback(zone.StateCode)
	}

	result, err := simulation.Simulate(zone, plants, sel, quote, req.ProjectionDays)
	if err != nil {
		s.metrics.SimulationCompleted(zone.ID, "error", s.now().Sub(start))
		return nil, err
	}

	if req.IncludeBrief {
		s.enricher.Enrich(ctx, result, snap)
	}

	s.metrics.SimulationCompleted(zone.ID, "success", s.now().Sub(start))
	s.metrics.SetZoneRisk(zone.ID, snap.RiskLevel.Severity())

	runID := s.persist(ctx, zone, eval, result)
	s.alert(ctx, zone, snap, result, runID)

	if s.verbose {
		fmt.Printf("[INFO] Simulation for zone %s: $%.2f no action, $%.2f with action (%s)\n",
			zone.ID, result.NoAction.TotalCostUSD, result.WithAction.TotalCostUSD, result.SelectionMode)
	}
	return result, nil
}

// getZone loads a zone and refuses inactive ones
func (s *Service) getZone(ctx context.Context, zoneID string) (*models.Zone, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	zone, err := s.store.GetZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if !zone.Active {
		return nil, fmt.Errorf("zone %s is not active: %w", zoneID, storage.ErrNotFound)
	}
	z := *zone
	return &z, nil
}

// buildSnapshot merges live observations with stored zone state
func (s *Service) buildSnapshot(ctx context.Context, zone *models.Zone) (*models.RiskSnapshot, error) {
	currentSPI := zone.CurrentSPI6M
	var series []models.SPIObservation

	if s.source != nil && s.source.IsAvailable(ctx) {
		if live, err := s.source.CurrentSPI(ctx, zone.ID); err == nil {
			currentSPI = live
		} else if s.verbose {
			fmt.Printf("[WARN] Live SPI unavailable for zone %s: %v\n", zone.ID, err)
		}
		if obs, err := s.source.SPISeries(ctx, zone.ID, trendWindow); err == nil {
			series = obs
		}
	}

	return risk.BuildSnapshot(zone.ID, currentSPI, series, zone.Trend, s.now())
}

// selectActions resolves the action plan for a request. Explicit ids win;
// otherwise fired heuristics drive the plan; otherwise the what-if
// improvement assumption applies unless disabled.
func (s *Service) selectActions(snap *models.RiskSnapshot, req models.SimulationRequest) (actions.Selection, heuristics.Evaluation, error) {
	var eval heuristics.Evaluation

	if len(req.ActionInstanceIDs) > 0 {
		sel, err := s.params.FromExplicit(req.ActionInstanceIDs)
		return sel, eval, err
	}

	eval = s.engine.Evaluate(snap.SPI6M, snap.DaysToCritical)
	if len(eval.Fired) > 0 {
		sel, err := s.params.FromEvaluation(eval, req.Profile)
		if err != nil {
			return actions.Selection{}, eval, err
		}
		if len(sel.Actions) > 0 {
			return sel, eval, nil
		}
	}

	if req.DisableDefaultAssumption || !s.cfg.DefaultAssumption {
		return s.params.NoSelection(), eval, nil
	}
	return s.params.DefaultAssumption(), eval, nil
}

// persist stores the run and its audit trail. Persistence failures are
// reported but never fail a completed simulation.
func (s *Service) persist(ctx context.Context, zone *models.Zone, eval heuristics.Evaluation, result *models.SimulationResult) string {
	if s.store == nil {
		return ""
	}
	payload, err := json.Marshal(result)
	if err != nil {
		fmt.Printf("[WARN] Failed to encode result for zone %s: %v\n", zone.ID, err)
		return ""
	}

	rec := &models.SimulationRecord{
		ID:                uuid.New().String(),
		ZoneID:            zone.ID,
		ProjectionDays:    result.ProjectionDays,
		PlantsAnalyzed:    result.PlantsAnalyzed,
		SelectionMode:     result.SelectionMode,
		PriceSource:       result.PriceQuoteUsed.Source,
		NoActionCostUSD:   result.NoAction.TotalCostUSD,
		WithActionCostUSD: result.WithAction.TotalCostUSD,
		SavingsUSD:        result.SavingsUSD,
		SavingsPct:        result.SavingsPct,
		Result:            payload,
		CreatedAt:         s.now(),
	}
	if err := s.store.SaveSimulation(ctx, rec); err != nil {
		fmt.Printf("[WARN] Failed to save simulation for zone %s: %v\n", zone.ID, err)
		return ""
	}

	s.audit(ctx, rec.ID, zone.ID, EventSimulationCompleted,
		fmt.Sprintf("%d plants over %d days, savings $%.2f (%.1f%%)",
			result.PlantsAnalyzed, result.ProjectionDays, result.SavingsUSD, result.SavingsPct))
	if result.PriceQuoteUsed.IsFallback() {
		s.audit(ctx, rec.ID, zone.ID, EventPriceFallback, result.PriceQuoteUsed.Source)
	}
	if eval.Escalated {
		s.audit(ctx, rec.ID, zone.ID, EventEscalationApplied,
			fmt.Sprintf("combined effect damped to %.2f%%", eval.CombinedPercentage))
	}
	return rec.ID
}

func (s *Service) audit(ctx context.Context, runID, zoneID, event, detail string) {
	entry := &models.AuditEntry{
		RunID:     runID,
		ZoneID:    zoneID,
		Event:     event,
		Detail:    detail,
		CreatedAt: s.now(),
	}
	if err := s.store.LogAudit(ctx, entry); err != nil {
		fmt.Printf("[WARN] Failed to write audit entry %s: %v\n", event, err)
	}
}

// alert publishes a critical zone alert. Alerting failures are reported
// but never fail a completed simulation.
func (s *Service) alert(ctx context.Context, zone *models.Zone, snap *models.RiskSnapshot, result *models.SimulationResult, runID string) {
	if s.alerts == nil || snap.RiskLevel != models.RiskCritical {
		return
	}
	a := alerts.FromSnapshot(*zone, *snap, result.NoAction.TotalCostUSD)
	if err := s.alerts.Publish(ctx, a); err != nil {
		fmt.Printf("[WARN] Failed to publish alert for zone %s: %v\n", zone.ID, err)
		return
	}
	if s.store != nil && runID != "" {
		s.audit(ctx, runID, zone.ID, EventAlertPublished, string(snap.RiskLevel))
	}
}

func validateProfile(profile models.Profile) error {
	switch profile {
	case "", models.ProfileGovernment, models.ProfileIndustry:
		return nil
	default:
		return fmt.Errorf("unknown profile %q: %w", profile, models.ErrInvalidInput)
	}
}

// filterPlants subsets a roster to the requested plant ids. An empty
// filter keeps the whole roster; ids that match nothing simply drop out.
func filterPlants(plants []models.PowerPlant, ids []string) []models.PowerPlant {
	if len(ids) == 0 {
		return plants
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]models.PowerPlant, 0, len(plants))
	for _, p := range plants {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
