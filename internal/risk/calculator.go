package risk

import (
	"context"
	"log"
	"math"
	"sort"

	"RiskRadar/internal/model"
	"RiskRadar/internal/pricecache"
	"RiskRadar/internal/stats"
)

const (
	// tradingDays is the assumed number of trading days per year.
	tradingDays = 252
	// riskFreeRate is the fixed annual risk-free rate for the Sharpe ratio.
	riskFreeRate = 0.02
	// minPoints is the minimum series length for beta and volatility.
	minPoints = 30

	defaultBeta        = 1.0
	defaultVolatility  = 20.0
	defaultCorrelation = 0.5
)

// DefaultMetrics is the full fallback object served when price data for a
// symbol (or the benchmark) cannot be fetched at all.
func DefaultMetrics() model.RiskMetrics {
	return model.RiskMetrics{
		Beta:        defaultBeta,
		Volatility:  defaultVolatility,
		Correlation: defaultCorrelation,
	}
}

// Calculator derives per-security risk metrics from cached price series,
// always measured against a fixed benchmark symbol.
type Calculator struct {
	Cache     *pricecache.Cache
	Benchmark string
}

// NewCalculator creates a Calculator.
func NewCalculator(cache *pricecache.Cache, benchmark string) *Calculator {
	return &Calculator{Cache: cache, Benchmark: benchmark}
}

// RiskMetrics computes metrics for one symbol over the given window. It
// never fails: on a data-source error the fixed defaults are returned.
func (c *Calculator) RiskMetrics(ctx context.Context, symbol string, window model.Window) model.RiskMetrics {
	m, _ := c.RiskMetricsDetail(ctx, symbol, window)
	return m
}

// RiskMetricsDetail is RiskMetrics plus a flag reporting whether defaults
// were substituted because of a provider failure. This is the single point
// where errors degrade into default values; compute itself stays fallible.
func (c *Calculator) RiskMetricsDetail(ctx context.Context, symbol string, window model.Window) (model.RiskMetrics, bool) {
	m, err := c.compute(ctx, symbol, window)
	if err != nil {
		log.Printf("[WARN] risk metrics %s (%s): %v, serving defaults", symbol, window, err)
		return DefaultMetrics(), true
	}
	return m, false
}

func (c *Calculator) compute(ctx context.Context, symbol string, window model.Window) (model.RiskMetrics, error) {
	stock, bench, err := c.fetchPair(ctx, symbol, window)
	if err != nil {
		return model.RiskMetrics{}, err
	}

	prices := stock.AdjCloses()
	returns := stats.Returns(prices)
	benchReturns := stats.Returns(bench.AdjCloses())

	return model.RiskMetrics{
		Beta:        beta(stock.Len(), bench.Len(), returns, benchReturns),
		Volatility:  volatility(stock.Len(), returns),
		SharpeRatio: sharpeRatio(returns),
		MaxDrawdown: maxDrawdown(prices),
		VaR95:       var95(returns),
		Correlation: round2(stats.Correlation(returns, benchReturns)),
	}, nil
}

// fetchPair loads the stock and benchmark series concurrently; both go
// through the cache.
func (c *Calculator) fetchPair(ctx context.Context, symbol string, window model.Window) (stock, bench *model.PriceSeries, err error) {
	var benchErr error
	done := make(chan struct{})
	go func() {
		bench, benchErr = c.Cache.Get(ctx, c.Benchmark, window)
		close(done)
	}()
	stock, err = c.Cache.Get(ctx, symbol, window)
	<-done
	if err != nil {
		return nil, nil, err
	}
	if benchErr != nil {
		return nil, nil, benchErr
	}
	return stock, bench, nil
}

// beta is cov(stock, benchmark) / var(benchmark) over the right-aligned
// return overlap. Series shorter than minPoints, or a flat benchmark,
// yield the neutral default.
func beta(stockPoints, benchPoints int, returns, benchReturns []float64) float64 {
	if stockPoints < minPoints || benchPoints < minPoints {
		return defaultBeta
	}
	r, b := stats.AlignRight(returns, benchReturns)
	bv := stats.Variance(b)
	if bv == 0 {
		return defaultBeta
	}
	return round2(stats.Covariance(r, b) / bv)
}

// volatility annualizes the daily return standard deviation, in percent.
func volatility(points int, returns []float64) float64 {
	if points < minPoints {
		return defaultVolatility
	}
	return round2(stats.StdDev(returns) * math.Sqrt(tradingDays) * 100)
}

// sharpeRatio is annualized excess return per unit of annualized
// volatility. The daily mean annualizes over 252 trading days.
func sharpeRatio(returns []float64) float64 {
	denom := stats.StdDev(returns) * math.Sqrt(tradingDays)
	if denom == 0 {
		return 0
	}
	return round2((stats.Mean(returns)*tradingDays - riskFreeRate) / denom)
}

// maxDrawdown reports the largest peak-to-trough decline as a percentage.
// A strictly increasing series yields 0.
func maxDrawdown(prices []float64) float64 {
	var peak, worst float64
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - p) / peak; dd > worst {
			worst = dd
		}
	}
	return round2(worst * 100)
}

// var95 is the historical (non-parametric) 5th-percentile daily return,
// taken at index floor(n*0.05) of the ascending sort, as a percentage.
func var95(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)
	idx := int(math.Floor(float64(len(sorted)) * 0.05))
	return round2(sorted[idx] * 100)
}

// round2 rounds to two decimals and squashes any non-finite intermediate
// to 0, keeping every published scalar finite.
func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
