package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/config"
)

// Records live feed payloads into testdata/prices/ for the pricing
// contract tests. Re-run when the feed's wire format changes.
func main() {
	cfg := config.NewConfig()
	if cfg.PriceFeedURL == "" {
		fmt.Fprintln(os.Stderr, "Error: PRICE_FEED_URL must be set")
		os.Exit(1)
	}

	fmt.Println("Recording feed responses for contract testing...")

	client := &http.Client{Timeout: cfg.PriceFeedTimeout}
	states := []string{"CA", "TX", "NY"}

	for _, state := range states {
		fmt.Printf("Recording %s... ", state)

		resp, err := client.Get(fmt.Sprintf("%s/v1/prices/%s", cfg.PriceFeedURL, state))
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			fmt.Printf("failed: %v\n", err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("failed: status %d\n", resp.StatusCode)
			continue
		}

		// Re-indent so recordings diff cleanly
		var pretty map[string]any
		if err := json.Unmarshal(body, &pretty); err != nil {
			fmt.Printf("failed: invalid JSON: %v\n", err)
			continue
		}
		data, _ := json.MarshalIndent(pretty, "", "  ")
		data = append(data, '\n')

		path := fmt.Sprintf("testdata/prices/feed_%s.json", strings.ToLower(state))
		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Printf("failed: %v\n", err)
			continue
		}
		fmt.Printf("saved to %s\n", path)
		time.Sleep(200 * time.Millisecond)
	}

	fmt.Println("\nRecordings complete. Re-run if the feed format changes.")
}
