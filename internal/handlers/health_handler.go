package handlers

import (
	"context"
	"net/http"
	"time"

	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	conn    repositories.Conn
	timeout time.Duration
}

func NewHealthHandler(conn repositories.Conn) *HealthHandler {
	return &HealthHandler{conn: conn, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Check)
}

// Check godoc
// @Summary  Liveness and store connectivity
// @Tags     ops
// @Produce  json
// @Success  200
// @Failure  500
// @Router   /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.conn.Ping(ctx); err != nil {
		logger.CtxWithError(ctx, "Health check failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
