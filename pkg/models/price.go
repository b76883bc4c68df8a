package models

import (
	"strings"
	"time"
)

// Price quote sources, in resolution priority order
const (
	PriceSourceZoneOverride = "zone_override"
	PriceSourceLiveFeed     = "live_feed"
	PriceSourceFallback     = "fallback"
)

// PriceQuote represents the commodity prices used for one simulation run
type PriceQuote struct {
	MarginalPriceUSDMWh float64   `json:"marginal_price_usd_mwh"`
	FuelPriceUSDMMBtu   float64   `json:"fuel_price_usd_mmbtu"`
	Source              string    `json:"source"`
	FetchedAt           time.Time `json:"fetched_at"`
}

// IsFallback reports whether the quote came from static constants rather
// than configuration or a live feed. Covers the annotated form
// "fallback (reason: ...)" as well.
func (q *PriceQuote) IsFallback() bool {
	return strings.HasPrefix(q.Source, PriceSourceFallback)
}
