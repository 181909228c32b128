package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
)

type ProjectService interface {
	Create(ctx context.Context, req model.ProjectCreateRequest) (*model.Project, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Project, int64, error)
}

type ProjectHandler struct {
	svc ProjectService
}

func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func RegisterProjectRoutes(e *router.Group, admin *AdminGroup, h *ProjectHandler) {
	e.GET("/projects", h.List)

	admin.POST("/projects", h.Create)
}

func (h *ProjectHandler) Create(ctx *xhttp.RequestCtx) {
	var req model.ProjectCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	p, err := h.svc.Create(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusCreated, p)
}

func (h *ProjectHandler) List(ctx *xhttp.RequestCtx) {
	items, total, err := h.svc.List(ctx, listFilter(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, listResponse[*model.Project]{Items: items, Total: total})
}
