package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns service health status (basic)
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stockboard-service",
	})
}

// ExtendedHealthCheck reports snapshot freshness alongside liveness.
func (h *StockHandler) ExtendedHealthCheck(c *gin.Context) {
	records, fetchedAt := h.repo.Snapshot()

	health := gin.H{
		"status":  "healthy",
		"service": "stockboard-service",
		"snapshot": gin.H{
			"records": len(records),
			"loaded":  !fetchedAt.IsZero(),
		},
	}
	if !fetchedAt.IsZero() {
		health["snapshot"].(gin.H)["fetchedAt"] = fetchedAt.Format(time.RFC3339)
		health["snapshot"].(gin.H)["ageSeconds"] = int(time.Since(fetchedAt).Seconds())
	}

	c.JSON(http.StatusOK, health)
}
