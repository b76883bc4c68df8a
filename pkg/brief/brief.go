// Package brief attaches a short executive narrative to simulation
// results. Enrichment is best effort: a failing provider degrades to a
// deterministic local summary, never to an error.
package brief

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// DefaultTimeout bounds one brief generation round trip
const DefaultTimeout = 10 * time.Second

// Provider generates a narrative for a finished simulation
type Provider interface {
	Generate(ctx context.Context, result *models.SimulationResult, snap *models.RiskSnapshot) (string, error)
	Name() string
}

// briefRequest is the payload sent to the narrative service
type briefRequest struct {
	ZoneID          string  `json:"zone_id"`
	RiskLevel       string  `json:"risk_level"`
	Trend           string  `json:"trend"`
	SPI6M           float64 `json:"spi_6m"`
	ProjectionDays  int     `json:"projection_days"`
	PlantsAnalyzed  int     `json:"plants_analyzed"`
	NoActionCostUSD float64 `json:"no_action_cost_usd"`
	SavingsUSD      float64 `json:"savings_usd"`
	SavingsPct      float64 `json:"savings_pct"`
	SelectionMode   string  `json:"selection_mode"`
}

type briefResponse struct {
	Brief string `json:"brief"`
}

// HTTPProvider calls an external narrative service
type HTTPProvider struct {
	url        string
	httpClient *http.Client
}

func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProvider{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (p *HTTPProvider) Name() string {
	return "http"
}

func (p *HTTPProvider) Generate(ctx context.Context, result *models.SimulationResult, snap *models.RiskSnapshot) (string, error) {
	payload := briefRequest{
		ZoneID:          result.ZoneID,
		ProjectionDays:  result.ProjectionDays,
		PlantsAnalyzed:  result.PlantsAnalyzed,
		NoActionCostUSD: result.NoAction.TotalCostUSD,
		SavingsUSD:      result.SavingsUSD,
		SavingsPct:      result.SavingsPct,
		SelectionMode:   string(result.SelectionMode),
	}
	if snap != nil {
		payload.RiskLevel = string(snap.RiskLevel)
		payload.Trend = string(snap.Trend)
		payload.SPI6M = snap.SPI6M
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("brief service returned status %d", resp.StatusCode)
	}

	var briefResp briefResponse
	if err := json.NewDecoder(resp.Body).Decode(&briefResp); err != nil {
		return "", err
	}
	if briefResp.Brief == "" {
		return "", fmt.Errorf("brief service returned an empty narrative")
	}
	return briefResp.Brief, nil
}

// FallbackText builds the local deterministic narrative
func FallbackText(result *models.SimulationResult, snap *models.RiskSnapshot) string {
	risk := "unclassified"
	trend := string(models.TrendStable)
	spi := 0.0
	if snap != nil {
		risk = string(snap.RiskLevel)
		trend = string(snap.Trend)
		spi = snap.SPI6M
	}

	text := fmt.Sprintf(
		"Zone %s is at %s drought risk (SPI %.2f, trend %s). Over %d days the no-action scenario costs %.0f USD across %d plants.",
		result.ZoneID, risk, spi, trend, result.ProjectionDays, result.NoAction.TotalCostUSD, result.PlantsAnalyzed)

	if result.SavingsUSD > 0 {
		text += fmt.Sprintf(" The selected plan (%s) reduces this by %.0f USD (%.1f%%).",
			result.SelectionMode, result.SavingsUSD, result.SavingsPct)
	} else {
		text += " No mitigation effect was modeled."
	}
	return text
}

// Enricher fills SimulationResult.Brief using the configured provider with
// the local narrative as a safety net
type Enricher struct {
	provider Provider
	verbose  bool
}

func NewEnricher(provider Provider, verbose bool) *Enricher {
	return &Enricher{provider: provider, verbose: verbose}
}

// Enrich sets the brief on the result in place
func (e *Enricher) Enrich(ctx context.Context, result *models.SimulationResult, snap *models.RiskSnapshot) {
	if e.provider != nil {
		text, err := e.provider.Generate(ctx, result, snap)
		if err == nil {
			result.Brief = text
			return
		}
		if e.verbose {
			fmt.Printf("[WARN] Brief provider %s failed: %v\n", e.provider.Name(), err)
		}
	}
	result.Brief = FallbackText(result, snap)
}
