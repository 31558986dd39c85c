package resolvers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"x402-gate/domain/interfaces"
)

// marketAPI fetches priced payloads from the upstream market data service.
type marketAPI struct {
	baseURL string
	client  *http.Client
	logger  interfaces.Logger
}

// newMarketAPI creates the upstream client.
func newMarketAPI(baseURL string, client *http.Client, logger interfaces.Logger) *marketAPI {
	return &marketAPI{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// MarketData returns the current quote for a market ticker.
func (m *marketAPI) MarketData(ctx context.Context, contentID string) (interface{}, error) {
	body, err := m.fetch(ctx, fmt.Sprintf("%s/markets/%s", m.baseURL, contentID))
	if err != nil {
		return nil, err
	}

	doc := gjson.GetBytes(body, "market")
	if !doc.Exists() {
		doc = gjson.ParseBytes(body)
	}

	return map[string]interface{}{
		"ticker":     contentID,
		"title":      doc.Get("title").String(),
		"status":     doc.Get("status").String(),
		"yes_price":  doc.Get("yes_bid").Int(),
		"no_price":   doc.Get("no_bid").Int(),
		"last_price": doc.Get("last_price").Int(),
		"volume":     doc.Get("volume").Int(),
		"close_time": doc.Get("close_time").String(),
	}, nil
}

// Candlesticks returns the chart series for a market ticker.
func (m *marketAPI) Candlesticks(ctx context.Context, contentID string) (interface{}, error) {
	body, err := m.fetch(ctx, fmt.Sprintf("%s/markets/%s/candlesticks", m.baseURL, contentID))
	if err != nil {
		return nil, err
	}

	points := make([]map[string]interface{}, 0)
	for _, c := range gjson.GetBytes(body, "candlesticks").Array() {
		points = append(points, map[string]interface{}{
			"ts":     c.Get("end_period_ts").Int(),
			"open":   c.Get("price.open").Int(),
			"high":   c.Get("price.high").Int(),
			"low":    c.Get("price.low").Int(),
			"close":  c.Get("price.close").Int(),
			"volume": c.Get("volume").Int(),
		})
	}

	return map[string]interface{}{
		"ticker": contentID,
		"series": points,
	}, nil
}

// Orderbook returns the current order book for a market ticker.
func (m *marketAPI) Orderbook(ctx context.Context, contentID string) (interface{}, error) {
	body, err := m.fetch(ctx, fmt.Sprintf("%s/markets/%s/orderbook", m.baseURL, contentID))
	if err != nil {
		return nil, err
	}

	book := gjson.GetBytes(body, "orderbook")
	return map[string]interface{}{
		"ticker": contentID,
		"yes":    levels(book.Get("yes")),
		"no":     levels(book.Get("no")),
	}, nil
}

// levels converts a [[price, size], ...] array into structured entries.
func levels(side gjson.Result) []map[string]int64 {
	out := make([]map[string]int64, 0)
	for _, lvl := range side.Array() {
		pair := lvl.Array()
		if len(pair) != 2 {
			continue
		}
		out = append(out, map[string]int64{
			"price": pair[0].Int(),
			"size":  pair[1].Int(),
		})
	}
	return out
}

// fetch performs one upstream GET and returns the response body.
func (m *marketAPI) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return body, nil
}
