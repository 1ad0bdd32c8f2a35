package recorder

import "RiskRadar/internal/model"

// RiskRecord is one computed per-security result.
type RiskRecord struct {
	Symbol    string
	Window    string
	Metrics   model.RiskMetrics
	RiskLevel string
	Degraded  bool
}

// PortfolioRecord is one computed portfolio-level result.
type PortfolioRecord struct {
	Holdings int
	Window   string
	Metrics  model.PortfolioMetrics
}

// Recorder keeps a history of computed metrics for later analysis. The
// engine itself recomputes on every call; this is observability only.
type Recorder interface {
	RecordRisk(rec *RiskRecord) error
	RecordPortfolio(rec *PortfolioRecord) error
	Close() error
}
