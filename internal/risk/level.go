package risk

// RiskLevel classifies annualized volatility (in percent) into the bands
// shown on the dashboard.
func RiskLevel(volatility float64) string {
	switch {
	case volatility < 10:
		return "low"
	case volatility < 20:
		return "medium"
	default:
		return "high"
	}
}
