package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
)

type ContactService interface {
	Submit(ctx context.Context, req model.ContactCreateRequest) (*model.ContactSubmission, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.ContactSubmission, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.ContactSubmission, error)
}

type ContactHandler struct {
	svc ContactService
}

func NewContactHandler(svc ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func RegisterContactRoutes(e *router.Group, admin *AdminGroup, h *ContactHandler) {
	e.POST("/contacts", h.Submit)

	admin.GET("/contacts", h.List)
	admin.PATCH("/contacts/{id}/status", h.UpdateStatus)
}

func (h *ContactHandler) Submit(ctx *xhttp.RequestCtx) {
	var req model.ContactCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	c, err := h.svc.Submit(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusCreated, map[string]any{"id": c.ID, "status": c.Status})
}

func (h *ContactHandler) List(ctx *xhttp.RequestCtx) {
	items, total, err := h.svc.List(ctx, listFilter(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, listResponse[*model.ContactSubmission]{Items: items, Total: total})
}

func (h *ContactHandler) UpdateStatus(ctx *xhttp.RequestCtx) {
	id, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	c, err := h.svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, c)
}
