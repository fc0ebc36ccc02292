package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/likeledger/internal/handler/http/dto"
)

// Pinger is implemented by ledger connections that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	ledger Pinger
}

// NewHealthHandler creates a HealthHandler. ledger may be nil for the
// in-memory ledger.
func NewHealthHandler(ledger Pinger) *HealthHandler {
	return &HealthHandler{ledger: ledger}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.ledger == nil {
		SuccessHandler(c, http.StatusOK, dto.HealthResponse{Status: "ok", Ledger: "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.ledger.Ping(ctx); err != nil {
		SuccessHandler(c, http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Ledger: err.Error()})
		return
	}
	SuccessHandler(c, http.StatusOK, dto.HealthResponse{Status: "ok", Ledger: "ok"})
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }
