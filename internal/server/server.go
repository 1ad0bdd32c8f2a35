package server

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"RiskRadar/internal/model"
	"RiskRadar/internal/pricecache"
	"RiskRadar/internal/recorder"
	"RiskRadar/internal/risk"
)

// Server exposes the analytics engine over a small JSON API.
type Server struct {
	addr  string
	calc  *risk.Calculator
	agg   *risk.Aggregator
	cache *pricecache.Cache
	rec   recorder.Recorder
	srv   *http.Server
}

// New creates a Server.
func New(addr string, calc *risk.Calculator, agg *risk.Aggregator, cache *pricecache.Cache, rec recorder.Recorder) *Server {
	return &Server{addr: addr, calc: calc, agg: agg, cache: cache, rec: rec}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/risk/", s.handleRisk)
	mux.HandleFunc("/api/v1/portfolio", s.handlePortfolio)
	mux.HandleFunc("/api/v1/cache/clear", s.handleCacheClear)
	mux.HandleFunc("/api/v1/cache/stats", s.handleCacheStats)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	log.Printf("[INFO] http server listening on %s", s.addr)
	return s.srv.Serve(ln)
}

type riskResponse struct {
	Symbol    string            `json:"symbol"`
	Period    string            `json:"period"`
	Metrics   model.RiskMetrics `json:"metrics"`
	RiskLevel string            `json:"riskLevel"`
	Degraded  bool              `json:"degraded"`
}

// handleRisk serves GET /api/v1/risk/{symbol}?period=1y.
func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	symbol := strings.TrimPrefix(r.URL.Path, "/api/v1/risk/")
	if symbol == "" || strings.Contains(symbol, "/") {
		http.Error(w, "symbol required", http.StatusBadRequest)
		return
	}

	window := model.DefaultWindow
	if p := r.URL.Query().Get("period"); p != "" {
		var err error
		if window, err = model.ParseWindow(p); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	metrics, degraded := s.calc.RiskMetricsDetail(r.Context(), symbol, window)
	level := risk.RiskLevel(metrics.Volatility)

	if err := s.rec.RecordRisk(&recorder.RiskRecord{
		Symbol:    symbol,
		Window:    string(window),
		Metrics:   metrics,
		RiskLevel: level,
		Degraded:  degraded,
	}); err != nil {
		log.Printf("[ERROR] record risk snapshot: %v", err)
	}

	writeJSON(w, riskResponse{
		Symbol:    symbol,
		Period:    string(window),
		Metrics:   metrics,
		RiskLevel: level,
		Degraded:  degraded,
	})
}

type portfolioRequest struct {
	Holdings []model.Holding `json:"holdings"`
	Period   string          `json:"period"`
}

type portfolioResponse struct {
	Holdings int                    `json:"holdings"`
	Period   string                 `json:"period"`
	Metrics  model.PortfolioMetrics `json:"metrics"`
}

// handlePortfolio serves POST /api/v1/portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req portfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Holdings) == 0 {
		http.Error(w, "holdings required", http.StatusBadRequest)
		return
	}
	for _, h := range req.Holdings {
		if h.Symbol == "" {
			http.Error(w, "holding symbol required", http.StatusBadRequest)
			return
		}
	}

	window := model.DefaultWindow
	if req.Period != "" {
		var err error
		if window, err = model.ParseWindow(req.Period); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	metrics := s.agg.PortfolioMetrics(r.Context(), req.Holdings, window)

	if err := s.rec.RecordPortfolio(&recorder.PortfolioRecord{
		Holdings: len(req.Holdings),
		Window:   string(window),
		Metrics:  metrics,
	}); err != nil {
		log.Printf("[ERROR] record portfolio snapshot: %v", err)
	}

	writeJSON(w, portfolioResponse{
		Holdings: len(req.Holdings),
		Period:   string(window),
		Metrics:  metrics,
	})
}

// handleCacheClear serves POST /api/v1/cache/clear.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.cache.Clear()
	log.Println("[INFO] price cache cleared")
	writeJSON(w, map[string]string{"status": "cleared"})
}

// handleCacheStats serves GET /api/v1/cache/stats.
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.cache.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] write response: %v", err)
	}
}
