package model

// RiskMetrics holds the derived risk/return statistics for one symbol over
// one window. All values are finite; when a statistic cannot be computed a
// fixed default is substituted instead of NaN.
type RiskMetrics struct {
	Beta        float64 `json:"beta"`
	Volatility  float64 `json:"volatility"`
	SharpeRatio float64 `json:"sharpeRatio"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	VaR95       float64 `json:"var95"`
	Correlation float64 `json:"correlation"`
}

// PortfolioMetrics has the same shape as RiskMetrics; each scalar is the
// weight-summed combination of the per-holding value.
type PortfolioMetrics RiskMetrics

// Holding is one position in a portfolio. Weights are caller-defined and
// not normalized by the engine.
type Holding struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}
