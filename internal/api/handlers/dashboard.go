package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/giza-dash/internal/provider"
	"github.com/giza-dash/internal/ratio"
	"github.com/giza-dash/pkg/config"
)

const maxHistoryDays = 365

// DashboardHandler serves the token metrics, history, and ratio endpoints
type DashboardHandler struct {
	provider *provider.Provider
	cfg      *config.CoinGeckoConfig
	aua      float64
	logger   *logrus.Entry
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(p *provider.Provider, cfg *config.CoinGeckoConfig, aua float64, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		provider: p,
		cfg:      cfg,
		aua:      aua,
		logger:   logger.WithField("component", "dashboard-api"),
	}
}

// RegisterRoutes registers dashboard routes on the given router
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/token/metrics", h.handleGetMetrics).Methods("GET")
	router.HandleFunc("/token/history", h.handleGetHistory).Methods("GET")
	router.HandleFunc("/token/ratios", h.handleGetRatios).Methods("GET")
}

// handleGetMetrics returns the current market snapshot
func (h *DashboardHandler) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := h.provider.GetTokenMetrics(r.Context())
	writeJSON(w, metrics)
}

// handleGetHistory returns the price series for a day window
func (h *DashboardHandler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	days := h.cfg.HistoryDays

	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHistoryDays {
			http.Error(w, "days must be an integer between 1 and 365", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	points := h.provider.GetPriceHistory(r.Context(), days)

	writeJSON(w, map[string]interface{}{
		"coin":   h.cfg.CoinID,
		"days":   days,
		"points": points,
		"count":  len(points),
	})
}

// handleGetRatios returns the derived ratios for the current snapshot
func (h *DashboardHandler) handleGetRatios(w http.ResponseWriter, r *http.Request) {
	metrics := h.provider.GetTokenMetrics(r.Context())
	ratios := ratio.Compute(metrics, h.aua)

	writeJSON(w, map[string]interface{}{
		"source": metrics.Source,
		"ratios": ratios,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
