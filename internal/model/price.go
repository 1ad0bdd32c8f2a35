package model

import "time"

// PricePoint is a single daily bar. Immutable once fetched.
type PricePoint struct {
	Date     time.Time
	Close    float64
	AdjClose float64
	Volume   float64
}

// PriceSeries holds ordered daily bars for one symbol over one lookback
// window. Points are ascending by date with no duplicate dates. A refetch
// produces a new series; an existing one is never edited in place.
type PriceSeries struct {
	Symbol    string
	Window    Window
	Points    []PricePoint
	FetchedAt time.Time
}

func (s *PriceSeries) Len() int { return len(s.Points) }

// AdjCloses extracts the adjusted close column.
func (s *PriceSeries) AdjCloses() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.AdjClose
	}
	return out
}
