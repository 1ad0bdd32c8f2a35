package provider

import (
	"context"
	"fmt"

	"RiskRadar/internal/model"
)

// Provider defines the interface for fetching daily price series.
type Provider interface {
	Fetch(ctx context.Context, symbol string, window model.Window) (*model.PriceSeries, error)
	Name() string
}

// Error wraps any failure from a market-data source. Network failures,
// rate limits, unknown symbols and malformed responses all land here;
// callers treat them identically.
type Error struct {
	Source string
	Symbol string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: fetch %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(source, symbol string, err error) *Error {
	return &Error{Source: source, Symbol: symbol, Err: err}
}
