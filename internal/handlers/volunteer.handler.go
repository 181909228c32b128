package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
)

type VolunteerService interface {
	Apply(ctx context.Context, req model.VolunteerCreateRequest) (*model.Volunteer, error)
	Get(ctx context.Context, id int64) (*model.Volunteer, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Volunteer, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Volunteer, error)
}

type VolunteerHandler struct {
	svc VolunteerService
}

func NewVolunteerHandler(svc VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{svc: svc}
}

func RegisterVolunteerRoutes(e *router.Group, admin *AdminGroup, h *VolunteerHandler) {
	e.POST("/volunteers", h.Apply)

	admin.GET("/volunteers", h.List)
	admin.GET("/volunteers/{id}", h.Get)
	admin.PATCH("/volunteers/{id}/status", h.UpdateStatus)
}

func (h *VolunteerHandler) Apply(ctx *xhttp.RequestCtx) {
	var req model.VolunteerCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	v, err := h.svc.Apply(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusCreated, v)
}

func (h *VolunteerHandler) List(ctx *xhttp.RequestCtx) {
	items, total, err := h.svc.List(ctx, listFilter(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, listResponse[*model.Volunteer]{Items: items, Total: total})
}

func (h *VolunteerHandler) Get(ctx *xhttp.RequestCtx) {
	id, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	v, err := h.svc.Get(ctx, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, v)
}

func (h *VolunteerHandler) UpdateStatus(ctx *xhttp.RequestCtx) {
	id, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	v, err := h.svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, v)
}
