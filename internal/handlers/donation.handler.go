package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/fasthttp/router"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
)

type DonationService interface {
	Create(ctx context.Context, req model.DonationCreateRequest) (*model.Donation, error)
	Get(ctx context.Context, id int64) (*model.Donation, error)
	GetByTransactionID(ctx context.Context, txnID string) (*model.Donation, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Donation, int64, error)
	Transition(ctx context.Context, id int64, status string) (*model.Donation, error)
}

type PaymentService interface {
	Verify(ctx context.Context, proof model.PaymentProof) (*model.Donation, error)
}

type DonationHandler struct {
	donations DonationService
	payments  PaymentService
}

func NewDonationHandler(donations DonationService, payments PaymentService) *DonationHandler {
	return &DonationHandler{
		donations: donations,
		payments:  payments,
	}
}

func RegisterDonationRoutes(e *router.Group, admin *AdminGroup, h *DonationHandler) {
	e.POST("/donations", h.CreateDonation)
	e.POST("/donations/verify", h.VerifyPayment)
	e.GET("/donations/{transaction_id}", h.GetDonation)

	admin.GET("/donations", h.ListDonations)
	admin.GET("/donations/{id}", h.GetDonationByID)
	admin.PATCH("/donations/{id}/status", h.UpdateDonationStatus)
}

// receipt is the public view of a donation; gateway identifiers stay
// internal.
type receipt struct {
	TransactionID string               `json:"transaction_id"`
	Amount        float64              `json:"amount"`
	DonorName     string               `json:"donor_name,omitempty"`
	Anonymous     bool                 `json:"anonymous"`
	Status        model.DonationStatus `json:"status"`
	CreatedAt     string               `json:"created_at"`
}

func toReceipt(d *model.Donation) receipt {
	r := receipt{
		TransactionID: d.TransactionID,
		Amount:        d.Amount,
		Anonymous:     d.Anonymous,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !d.Anonymous {
		r.DonorName = d.DonorName
	}
	return r
}

func (h *DonationHandler) CreateDonation(ctx *xhttp.RequestCtx) {
	var req model.DonationCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	d, err := h.donations.Create(ctx, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusCreated, toReceipt(d))
}

func (h *DonationHandler) GetDonation(ctx *xhttp.RequestCtx) {
	d, err := h.donations.GetByTransactionID(ctx, pathString(ctx, "transaction_id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, toReceipt(d))
}

func (h *DonationHandler) GetDonationByID(ctx *xhttp.RequestCtx) {
	id, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	d, err := h.donations.Get(ctx, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, d)
}

func (h *DonationHandler) VerifyPayment(ctx *xhttp.RequestCtx) {
	var proof model.PaymentProof
	if err := readJSON(ctx, &proof); err != nil {
		invalidJSON(ctx, err)
		return
	}
	d, err := h.payments.Verify(ctx, proof)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSignature) && d != nil {
			writeJSON(ctx, xhttp.StatusBadRequest, envelope{Success: false, Message: err.Error(), Data: toReceipt(d)})
			return
		}
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, toReceipt(d))
}

func (h *DonationHandler) ListDonations(ctx *xhttp.RequestCtx) {
	items, total, err := h.donations.List(ctx, listFilter(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, listResponse[*model.Donation]{Items: items, Total: total})
}

func (h *DonationHandler) UpdateDonationStatus(ctx *xhttp.RequestCtx) {
	id, ok := pathInt64(ctx, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := readJSON(ctx, &req); err != nil {
		invalidJSON(ctx, err)
		return
	}
	d, err := h.donations.Transition(ctx, id, req.Status)
	if err != nil {
		writeError(ctx, err)
		return
	}
	writeData(ctx, xhttp.StatusOK, d)
}
