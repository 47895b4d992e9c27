package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kyclens/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	parserCfg *config.ParserConfig
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(parserCfg *config.ParserConfig) *HealthHandler {
	return &HealthHandler{parserCfg: parserCfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// Ready means a parser provider is configured with an API key; there is no
// datastore to ping.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.parserCfg.Primary.APIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "no parser API key configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
