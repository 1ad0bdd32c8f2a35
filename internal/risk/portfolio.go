package risk

import (
	"context"
	"log"
	"sync"

	"RiskRadar/internal/model"
)

const portfolioDefaultVolatility = 15.0

// DefaultPortfolioMetrics is the portfolio-level fallback. Its volatility
// differs from the per-security default on purpose.
func DefaultPortfolioMetrics() model.PortfolioMetrics {
	return model.PortfolioMetrics{
		Beta:        defaultBeta,
		Volatility:  portfolioDefaultVolatility,
		Correlation: defaultCorrelation,
	}
}

// RiskFunc computes metrics for one symbol.
type RiskFunc func(ctx context.Context, symbol string, window model.Window) model.RiskMetrics

// Aggregator fans per-security computations out across a portfolio's
// holdings and combines them into portfolio-level figures.
type Aggregator struct {
	risk RiskFunc
}

// NewAggregator builds an aggregator over a Calculator.
func NewAggregator(c *Calculator) *Aggregator {
	return &Aggregator{risk: c.RiskMetrics}
}

// NewAggregatorFunc builds an aggregator over an arbitrary metrics source,
// for tests.
func NewAggregatorFunc(fn RiskFunc) *Aggregator {
	return &Aggregator{risk: fn}
}

// PortfolioMetrics computes each holding's risk metrics concurrently and
// combines them as weight-proportional sums. Weights are used as given;
// callers are expected to pass weights summing to 1, but nothing here
// normalizes them.
//
// Summing Sharpe, drawdown, VaR and correlation this way is a known
// simplification (true portfolio volatility needs the full covariance
// matrix). The linear combination is kept so the numbers stay comparable
// with what existing dashboards show.
func (a *Aggregator) PortfolioMetrics(ctx context.Context, holdings []model.Holding, window model.Window) (p model.PortfolioMetrics) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] portfolio metrics panicked: %v, serving defaults", r)
			p = DefaultPortfolioMetrics()
		}
	}()

	if len(holdings) == 0 {
		log.Printf("[WARN] portfolio metrics requested for empty holdings, serving defaults")
		return DefaultPortfolioMetrics()
	}

	// Results are matched back to holdings by index, not completion order.
	perHolding := make([]model.RiskMetrics, len(holdings))
	var wg sync.WaitGroup
	for i, h := range holdings {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			perHolding[i] = a.risk(ctx, symbol, window)
		}(i, h.Symbol)
	}
	wg.Wait()

	for i, h := range holdings {
		m := perHolding[i]
		p.Beta += m.Beta * h.Weight
		p.Volatility += m.Volatility * h.Weight
		p.SharpeRatio += m.SharpeRatio * h.Weight
		p.MaxDrawdown += m.MaxDrawdown * h.Weight
		p.VaR95 += m.VaR95 * h.Weight
		p.Correlation += m.Correlation * h.Weight
	}
	p.Beta = round2(p.Beta)
	p.Volatility = round2(p.Volatility)
	p.SharpeRatio = round2(p.SharpeRatio)
	p.MaxDrawdown = round2(p.MaxDrawdown)
	p.VaR95 = round2(p.VaR95)
	p.Correlation = round2(p.Correlation)
	return p
}
