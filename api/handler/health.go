package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/api/transport"
	"github.com/fastygo/taskmaster/internal/infrastructure/monitor"
	"github.com/fastygo/taskmaster/pkg/httpcontext"
)

// StatusSource exposes the cached dependency probe results.
type StatusSource interface {
	GetStatus() monitor.Status
}

type HealthHandler struct {
	baseHandler
	source StatusSource
}

func NewHealthHandler(source StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{baseHandler: newBaseHandler(adapter, logger), source: source}
}

// Check answers 200 when every probed store is reachable and 503 otherwise.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.source.GetStatus()
	report := transport.Health{
		Timestamp: time.Now().UTC(),
		LastCheck: status.LastCheck,
		Services:  status.Services,
	}

	if !status.Healthy() {
		h.respondError(ctx, http.StatusServiceUnavailable, "DEGRADED", "dependencies unhealthy", report)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}
