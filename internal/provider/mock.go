package provider

import (
	"context"
	"sync"
	"time"

	"RiskRadar/internal/model"
)

// Mock returns controllable fixed data for development and testing. When
// Err is set every fetch fails with it; otherwise Series overrides take
// precedence over the generated trend around Price.
type Mock struct {
	Price  float64
	Series map[string][]model.PricePoint
	Err    error

	mu    sync.Mutex
	calls map[string]int
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Fetch(_ context.Context, symbol string, window model.Window) (*model.PriceSeries, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol+"|"+string(window)]++
	m.mu.Unlock()

	if m.Err != nil {
		return nil, newError(m.Name(), symbol, m.Err)
	}

	points := m.Series[symbol]
	if points == nil {
		points = GenerateTrend(m.Price, 260)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Window:    window,
		Points:    points,
		FetchedAt: time.Now(),
	}, nil
}

// FetchCount reports how many fetches were issued for a (symbol, window) key.
func (m *Mock) FetchCount(symbol string, window model.Window) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol+"|"+string(window)]
}

// GenerateTrend builds a gently rising daily series around a base price.
func GenerateTrend(basePrice float64, count int) []model.PricePoint {
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		points[i] = model.PricePoint{
			Date:     time.Now().AddDate(0, 0, -(count - i)),
			Close:    p,
			AdjClose: p,
			Volume:   1000000,
		}
	}
	return points
}
