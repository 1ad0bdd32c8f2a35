package server

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"RiskRadar/internal/pricecache"
	"RiskRadar/internal/provider"
	"RiskRadar/internal/recorder"
	"RiskRadar/internal/risk"
)

func newTestServer(src provider.Provider) *Server {
	cache := pricecache.New(src)
	calc := risk.NewCalculator(cache, "SPY")
	return New(":0", calc, risk.NewAggregator(calc), cache, recorder.NewNoopRecorder())
}

func TestHandleRisk_DegradedOnProviderFailure(t *testing.T) {
	s := newTestServer(&provider.Mock{Err: errors.New("rate limited")})

	req := httptest.NewRequest("GET", "/api/v1/risk/AAPL?period=1y", nil)
	rr := httptest.NewRecorder()
	s.handleRisk(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp riskResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Degraded {
		t.Error("expected degraded flag for failing provider")
	}
	if resp.Metrics.Beta != 1.0 || resp.Metrics.Volatility != 20.0 || resp.Metrics.Correlation != 0.5 {
		t.Errorf("expected default metrics, got %+v", resp.Metrics)
	}
	if resp.RiskLevel != "high" {
		t.Errorf("default volatility 20.0 classifies as high, got %q", resp.RiskLevel)
	}
}

func TestHandleRisk_BadPeriod(t *testing.T) {
	s := newTestServer(&provider.Mock{Price: 100})

	req := httptest.NewRequest("GET", "/api/v1/risk/AAPL?period=7w", nil)
	rr := httptest.NewRecorder()
	s.handleRisk(rr, req)

	if rr.Code != 400 {
		t.Errorf("expected 400 for unknown period, got %d", rr.Code)
	}
}

func TestHandlePortfolio(t *testing.T) {
	s := newTestServer(&provider.Mock{Price: 100})

	body := `{"holdings":[{"symbol":"AAPL","weight":0.6},{"symbol":"MSFT","weight":0.4}]}`
	req := httptest.NewRequest("POST", "/api/v1/portfolio", strings.NewReader(body))
	rr := httptest.NewRecorder()
	s.handlePortfolio(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp portfolioResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Holdings != 2 {
		t.Errorf("expected 2 holdings, got %d", resp.Holdings)
	}
	if resp.Period != "1y" {
		t.Errorf("expected default period 1y, got %q", resp.Period)
	}
	// Both mock series match the benchmark, so the weighted beta stays 1.
	if resp.Metrics.Beta != 1.0 {
		t.Errorf("expected beta 1.0, got %.2f", resp.Metrics.Beta)
	}
}

func TestHandlePortfolio_EmptyHoldings(t *testing.T) {
	s := newTestServer(&provider.Mock{Price: 100})

	req := httptest.NewRequest("POST", "/api/v1/portfolio", strings.NewReader(`{"holdings":[]}`))
	rr := httptest.NewRecorder()
	s.handlePortfolio(rr, req)

	if rr.Code != 400 {
		t.Errorf("expected 400 for empty holdings, got %d", rr.Code)
	}
}

func TestHandleCacheClearAndStats(t *testing.T) {
	s := newTestServer(&provider.Mock{Price: 100})

	// Populate via a risk call, then clear.
	s.handleRisk(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/risk/AAPL", nil))

	rr := httptest.NewRecorder()
	s.handleCacheStats(rr, httptest.NewRequest("GET", "/api/v1/cache/stats", nil))
	var st pricecache.Stats
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if st.CacheSize != 2 { // AAPL + benchmark
		t.Errorf("expected 2 cached series, got %d", st.CacheSize)
	}

	rr = httptest.NewRecorder()
	s.handleCacheClear(rr, httptest.NewRequest("POST", "/api/v1/cache/clear", nil))
	if rr.Code != 200 {
		t.Fatalf("clear: expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	s.handleCacheStats(rr, httptest.NewRequest("GET", "/api/v1/cache/stats", nil))
	if err := json.Unmarshal(rr.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if st.CacheSize != 0 {
		t.Errorf("expected empty cache after clear, got %d", st.CacheSize)
	}

	rr = httptest.NewRecorder()
	s.handleCacheClear(rr, httptest.NewRequest("GET", "/api/v1/cache/clear", nil))
	if rr.Code != 405 {
		t.Errorf("expected 405 for GET on clear, got %d", rr.Code)
	}
}

func TestHandleRisk_MethodNotAllowed(t *testing.T) {
	s := newTestServer(&provider.Mock{Price: 100})

	rr := httptest.NewRecorder()
	s.handleRisk(rr, httptest.NewRequest("POST", "/api/v1/risk/AAPL", nil))
	if rr.Code != 405 {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}
