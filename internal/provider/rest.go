package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"RiskRadar/internal/model"
)

// REST implements Provider against a generic bar-history API that takes an
// explicit date range. The window token is translated to (start, end) here.
type REST struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewREST creates a new REST provider with optional proxy support.
func NewREST(baseURL, apiKey, proxyURL string) *REST {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &REST{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   fetchTimeout,
			Transport: transport,
		},
	}
}

func (r *REST) Name() string { return "rest" }

// restBar is the expected JSON shape for one daily bar. Fields the feed
// omits decode to zero, which keeps the point instead of dropping it.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
	AdjClose  float64 `json:"adjustedClose"`
	Volume    float64 `json:"volume"`
}

func (r *REST) Fetch(ctx context.Context, symbol string, window model.Window) (*model.PriceSeries, error) {
	now := time.Now()
	start := window.Start(now)
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&start=%s&end=%s&interval=1d",
		r.BaseURL, url.QueryEscape(symbol),
		start.Format("2006-01-02"), now.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, newError(r.Name(), symbol, err)
	}
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, newError(r.Name(), symbol, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, newError(r.Name(), symbol, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body)))
	}

	var bars []restBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, newError(r.Name(), symbol, fmt.Errorf("decode bars: %w", err))
	}
	if len(bars) == 0 {
		return nil, newError(r.Name(), symbol, fmt.Errorf("no data returned"))
	}

	points := make([]model.PricePoint, len(bars))
	for i, b := range bars {
		points[i] = model.PricePoint{
			Date:     time.Unix(b.Timestamp, 0),
			Close:    b.Close,
			AdjClose: b.AdjClose,
			Volume:   b.Volume,
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return &model.PriceSeries{
		Symbol:    symbol,
		Window:    window,
		Points:    points,
		FetchedAt: time.Now(),
	}, nil
}
