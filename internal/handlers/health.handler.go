package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/lifecycle"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type NotificationStats interface {
	Stats() lifecycle.StatsSnapshot
}

type HealthHandler struct {
	checks map[string]Pinger
	stats  NotificationStats
}

func NewHealthHandler(stats NotificationStats, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		stats:  stats,
	}
}

func RegisterHealthRoutes(e *router.Group, h *HealthHandler) {
	e.GET("/health", h.GetHealth)
}

type healthResponse struct {
	Status        string                   `json:"status"`
	Checks        map[string]string        `json:"checks,omitempty"`
	Notifications *lifecycle.StatsSnapshot `json:"notifications,omitempty"`
}

func (h *HealthHandler) GetHealth(ctx *xhttp.RequestCtx) {
	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	for name, p := range h.checks {
		if err := p.Ping(pingCtx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Checks[name] = "ok"
	}
	if h.stats != nil {
		s := h.stats.Stats()
		resp.Notifications = &s
	}

	if resp.Status != "ok" {
		writeJSON(ctx, xhttp.StatusServiceUnavailable, envelope{Success: false, Data: resp, Message: "dependency check failed"})
		return
	}
	writeData(ctx, xhttp.StatusOK, resp)
}
