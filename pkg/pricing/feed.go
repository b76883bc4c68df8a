package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultFeedTimeout bounds a single price feed round trip
const DefaultFeedTimeout = 10 * time.Second

// feedPriceResponse is the wire shape of the regional energy price feed
type feedPriceResponse struct {
	State               string  `json:"state"`
	ElectricityCentsKWh float64 `json:"electricity_cents_kwh"`
	NaturalGasUSDMMBtu  float64 `json:"natural_gas_usd_mmbtu"`
	Period              string  `json:"period"`
}

// FeedClient fetches state-level energy prices from the configured feed
type FeedClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewFeedClient(baseURL string, timeout time.Duration) *FeedClient {
	if timeout <= 0 {
		timeout = DefaultFeedTimeout
	}
	return &FeedClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (f *FeedClient) fetch(ctx context.Context, stateCode string) (*feedPriceResponse, error) {
	url := fmt.Sprintf("%s/v1/prices/%s", f.baseURL, stateCode)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var priceResp feedPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return nil, err
	}

	if priceResp.ElectricityCentsKWh <= 0 {
		return nil, fmt.Errorf("price feed returned non-positive electricity price %.4f", priceResp.ElectricityCentsKWh)
	}
	if priceResp.NaturalGasUSDMMBtu <= 0 {
		return nil, fmt.Errorf("price feed returned non-positive gas price %.4f", priceResp.NaturalGasUSDMMBtu)
	}
	return &priceResp, nil
}
