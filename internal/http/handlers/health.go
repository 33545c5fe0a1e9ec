package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const moduleName = "CNA – Draft Engine"

type HealthHandler struct {
	version string
	ready   func() bool
}

// NewHealthHandler builds the liveness handlers. A nil ready func reports
// always ready.
func NewHealthHandler(version string, ready func() bool) *HealthHandler {
	return &HealthHandler{version: version, ready: ready}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "CNA service is running"})
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"module":  moduleName,
		"version": h.version,
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil && !h.ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
