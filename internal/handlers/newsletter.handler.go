package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Subscriber, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Subscriber, error)
}

type NewsletterHandler struct {
	svc NewsletterService
}

func NewNewsletterHandler(svc NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{svc: svc}
}

func RegisterNewsletterRoutes(e *router.Group, admin *AdminGroup, h *NewsletterHandler) {
	e.POST("/newsletter/subscribe", h.Subscribe)
	e.POST("/newsletter/unsubscribe", h.Unsubscribe)

	admin.GET("/subscribers", h.List)
	admin.PATCH("/subscribers/{id}/status", h.UpdateStatus)
}

type subscriptionResponse struct {
	Email  string                 `json:"email"`
	Status model.SubscriberStatus `json:"status"`
}

func (h *NewsletterHandler) Subscribe(ctx *xhttp.RequestCtx) {
	var req model.SubscribeRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	s, err := h.svc.Subscribe(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusCreated, subscriptionResponse{Email: s.Email, Status: s.Status})
}

func (h *NewsletterHandler) Unsubscribe(ctx *xhttp.RequestCtx) {
	var req model.SubscribeRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	s, err := h.svc.Unsubscribe(ctx, req.Email)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, subscriptionResponse{Email: s.Email, Status: s.Status})
}

func (h *NewsletterHandler) List(ctx *xhttp.RequestCtx) {
	items, total, err := h.svc.List(ctx, listFilter(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, listResponse[*model.Subscriber]{Items: items, Total: total})
}

func (h *NewsletterHandler) UpdateStatus(ctx *xhttp.RequestCtx) {
	id, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	s, err := h.svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, s)
}
