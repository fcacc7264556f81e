package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "alive",
		"time":   time.Now().UTC(),
	}))
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	checks := make(map[string]string, len(h.probes))
	ready := true
	for name, probe := range h.probes {
		if err := probe(); err != nil {
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, &Response{
			Status:  "error",
			Message: "not ready",
			Data:    gin.H{"checks": checks},
		})
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"status": "ready",
		"checks": checks,
	}))
}
