package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
)

type EventService interface {
	CreateEvent(ctx context.Context, req model.EventCreateRequest) (*model.Event, error)
	ListEvents(ctx context.Context, f model.ListFilter) ([]*model.Event, error)
	Register(ctx context.Context, req model.RegistrationCreateRequest) (*model.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID int64, f model.ListFilter) ([]*model.EventRegistration, int64, error)
	UpdateRegistrationStatus(ctx context.Context, id int64, status string) (*model.EventRegistration, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func RegisterEventRoutes(e *router.Group, admin *AdminGroup, h *EventHandler) {
	e.GET("/events", h.ListEvents)
	e.POST("/events/{id}/registrations", h.Register)

	admin.POST("/events", h.CreateEvent)
	admin.GET("/registrations", h.ListRegistrations)
	admin.PATCH("/registrations/{id}/status", h.UpdateRegistrationStatus)
}

func (h *EventHandler) ListEvents(ctx *xhttp.RequestCtx) {
	items, err := h.svc.ListEvents(ctx, listFilter(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, listResponse[*model.Event]{Items: items, Total: int64(len(items))})
}

func (h *EventHandler) CreateEvent(ctx *xhttp.RequestCtx) {
	var req model.EventCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	ev, err := h.svc.CreateEvent(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusCreated, ev)
}

func (h *EventHandler) Register(ctx *xhttp.RequestCtx) {
	eventID, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	var req model.RegistrationCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	req.EventID = eventID

	reg, err := h.svc.Register(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusCreated, reg)
}

// ListRegistrations accepts an optional event_id query argument.
func (h *EventHandler) ListRegistrations(ctx *xhttp.RequestCtx) {
	var eventID int64
	if v := ctx.QueryArgs().GetUintOrZero("event_id"); v > 0 {
		eventID = int64(v)
	}
	items, total, err := h.svc.ListRegistrations(ctx, eventID, listFilter(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, listResponse[*model.EventRegistration]{Items: items, Total: total})
}

func (h *EventHandler) UpdateRegistrationStatus(ctx *xhttp.RequestCtx) {
	id, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	reg, err := h.svc.UpdateRegistrationStatus(ctx, id, req.Status)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, reg)
}
