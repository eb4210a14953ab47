package handlers

import (
	"context"
	"net/http"

	"portfolio-api/helper"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	helper *helper.HTTPHelper
}

func NewHealthHandler(db Pinger, h *helper.HTTPHelper) *HealthHandler {
	return &HealthHandler{db: db, helper: h}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			h.helper.SendError(c, err, "Database unavailable")
			return
		}
	}
	h.helper.SendSuccess(c, http.StatusOK, gin.H{"status": "healthy"})
}
