package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/fliamecomm/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger checks a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness check
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health godoc
// @Summary      Health check
// @Description  Reports whether the service and its database are up
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Failure      503 {object} dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "skipped"}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			logger.GetGinLogger(c).Warn("Database health check failed", zap.Error(err))
			resp.Status, resp.Database = "degraded", "unreachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}
	c.JSON(http.StatusOK, resp)
}
