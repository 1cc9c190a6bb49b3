package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/giza-dash/internal/protocol"
)

// ProtocolHandler serves the static protocol and tokenomics datasets
type ProtocolHandler struct {
	logger *logrus.Entry
}

// NewProtocolHandler creates a new protocol handler
func NewProtocolHandler(logger *logrus.Logger) *ProtocolHandler {
	return &ProtocolHandler{
		logger: logger.WithField("component", "protocol-api"),
	}
}

// RegisterRoutes registers protocol routes on the given router
func (h *ProtocolHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/protocol/stats", h.handleGetStats).Methods("GET")
	router.HandleFunc("/protocol/growth", h.handleGetGrowth).Methods("GET")
	router.HandleFunc("/token/distribution", h.handleGetDistribution).Methods("GET")
}

func (h *ProtocolHandler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, protocol.Stats())
}

func (h *ProtocolHandler) handleGetGrowth(w http.ResponseWriter, r *http.Request) {
	growth := protocol.Growth()
	writeJSON(w, map[string]interface{}{
		"points": growth,
		"count":  len(growth),
	})
}

func (h *ProtocolHandler) handleGetDistribution(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, protocol.Distribution())
}
