package handler

import (
	"net/http"
	"time"

	"github.com/RigelNana/arkstudy/services/admin-service/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	log       *logrus.Logger
}

func NewDashboardHandler(dashboard service.DashboardService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

// Stats GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		serverError(c, h.log, "Failed to fetch dashboard stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Health GET /api/health
func Health(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   message,
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}
