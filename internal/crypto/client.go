package crypto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/fetch"
)

// quote is the per-currency slice of a simple-price response entry.
type quote struct {
	USD           float64 `json:"usd"`
	LastUpdatedAt int64   `json:"last_updated_at"`
}

// Client fetches batched spot prices.
type Client struct {
	fetcher *fetch.Client
	apiURL  string
}

// NewClient creates a price client against apiURL using fetcher.
func NewClient(fetcher *fetch.Client, apiURL string) *Client {
	return &Client{fetcher: fetcher, apiURL: apiURL}
}

// FetchPrices requests USD prices for all symbols in one batched call.
// It returns the prices keyed by API identifier and the raw response body.
// Symbols missing from the response are reported as an error by the caller,
// not here; a partially filled map is still usable.
func (c *Client) FetchPrices(ctx context.Context, symbols []config.Symbol) (map[string]float64, json.RawMessage, error) {
	if len(symbols) == 0 {
		return nil, nil, fmt.Errorf("no symbols configured")
	}

	ids := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		ids = append(ids, sym.ID)
	}
	sort.Strings(ids)

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_last_updated_at", "true")

	var decoded map[string]quote
	raw, err := c.fetcher.GetJSON(ctx, c.apiURL, params, &decoded)
	if err != nil {
		return nil, nil, fmt.Errorf("price request failed: %w", err)
	}

	prices := make(map[string]float64, len(decoded))
	for id, q := range decoded {
		prices[id] = q.USD
	}

	return prices, raw, nil
}
