// Package pricing resolves the energy and fuel prices a simulation runs
// with. Resolution order is zone override, then the live feed, then static
// fallback prices; the resolver itself never fails.
package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/converter"
	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// Static fallback prices when no override is set and the feed is
// unavailable
const (
	FallbackEnergyPriceUSDMWh = 100.0
	FallbackFuelPriceUSDMMBtu = 3.0
)

// DefaultCacheTTL is how long a live feed quote stays fresh
const DefaultCacheTTL = 6 * time.Hour

// Resolver walks the price resolution chain for a zone
type Resolver struct {
	feed  *FeedClient
	cache *PriceCache
	now   func() time.Time
}

// NewResolver creates a resolver. An empty feedURL disables the live feed
// and every non-override lookup lands on the static fallback.
func NewResolver(feedURL string, timeout, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	r := &Resolver{
		cache: NewPriceCache(ttl),
		now:   time.Now,
	}
	if feedURL != "" {
		r.feed = NewFeedClient(feedURL, timeout)
	}
	return r
}

// SetClock overrides the timestamp source for resolved quotes
func (r *Resolver) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Resolve returns the quote for a zone, honoring the zone price override
// before consulting the regional feed
func (r *Resolver) Resolve(ctx context.Context, zone *models.Zone) *models.PriceQuote {
	if zone != nil && zone.HasPriceOverride() {
		return &models.PriceQuote{
			MarginalPriceUSDMWh: *zone.EnergyPriceUSDMWh,
			FuelPriceUSDMMBtu:   *zone.FuelPriceUSDMMBtu,
			Source:              models.PriceSourceZoneOverride,
			FetchedAt:           r.now(),
		}
	}
	stateCode := ""
	if zone != nil {
		stateCode = zone.StateCode
	}
	return r.ResolveRegion(ctx, stateCode)
}

// ResolveRegion resolves prices for a state code without zone context.
// Feed failures degrade to the fallback quote with the failure preserved
// in the source field.
func (r *Resolver) ResolveRegion(ctx context.Context, stateCode string) *models.PriceQuote {
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	if r.feed == nil || stateCode == "" {
		return r.fallbackQuote(nil)
	}

	cacheKey := "feed-" + stateCode
	if cached := r.cache.Get(cacheKey); cached != nil {
		return cached
	}

	resp, err := r.feed.fetch(ctx, stateCode)
	if err != nil {
		return r.fallbackQuote(err)
	}

	quote := &models.PriceQuote{
		MarginalPriceUSDMWh: converter.CentsPerKWhToUSDPerMWh(resp.ElectricityCentsKWh),
		FuelPriceUSDMMBtu:   resp.NaturalGasUSDMMBtu,
		Source:              models.PriceSourceLiveFeed,
		FetchedAt:           r.now(),
	}
	r.cache.Set(cacheKey, quote)
	return quote
}

func (r *Resolver) fallbackQuote(cause error) *models.PriceQuote {
	source := models.PriceSourceFallback
	if cause != nil {
		source = fmt.Sprintf("%s (reason: %v)", models.PriceSourceFallback, cause)
	}
	return &models.PriceQuote{
		MarginalPriceUSDMWh: FallbackEnergyPriceUSDMWh,
		FuelPriceUSDMMBtu:   FallbackFuelPriceUSDMMBtu,
		Source:              source,
		FetchedAt:           r.now(),
	}
}
