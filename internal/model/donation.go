package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
	DonationStatusRefunded  DonationStatus = "refunded"
)

var DonationStatuses = []DonationStatus{
	DonationStatusPending,
	DonationStatusCompleted,
	DonationStatusFailed,
	DonationStatusRefunded,
}

// donationTransitions lists the moves an administrator may apply. Same-status
// updates are always accepted as no-ops and are not listed.
var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationStatusPending:   {DonationStatusCompleted, DonationStatusFailed},
	DonationStatusCompleted: {DonationStatusRefunded},
	DonationStatusFailed:    {DonationStatusCompleted},
	DonationStatusRefunded:  nil,
}

const MinDonationAmount = 1

// MaxDonationAmount is the first value that no longer fits NUMERIC(12,2).
const MaxDonationAmount = 10_000_000_000

type Donation struct {
	ID               int64          `json:"id"`
	TransactionID    string         `json:"transaction_id"`
	Amount           float64        `json:"amount"`
	DonorName        string         `json:"donor_name"`
	DonorEmail       string         `json:"donor_email"`
	DonorPhone       string         `json:"donor_phone,omitempty"`
	TaxID            string         `json:"tax_id,omitempty"`
	Message          string         `json:"message,omitempty"`
	Anonymous        bool           `json:"anonymous"`
	GatewayOrderID   string         `json:"gateway_order_id,omitempty"`
	GatewayPaymentID string         `json:"gateway_payment_id,omitempty"`
	GatewaySignature string         `json:"-"`
	Status           DonationStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (d *Donation) NotifyKind() Kind        { return KindDonation }
func (d *Donation) NotifyID() int64         { return d.ID }
func (d *Donation) NotifyStatus() string    { return string(d.Status) }
func (d *Donation) NotifyRecipient() string { return d.DonorEmail }

// SamePayment reports whether the recorded identifiers equal the given ones.
func (d *Donation) SamePayment(orderID, paymentID string) bool {
	return d.GatewayOrderID == orderID && d.GatewayPaymentID == paymentID
}

type DonationCreateRequest struct {
	Amount     float64 `json:"amount"`
	DonorName  string  `json:"donor_name"`
	DonorEmail string  `json:"donor_email"`
	DonorPhone string  `json:"donor_phone"`
	TaxID      string  `json:"tax_id"`
	Message    string  `json:"message"`
	Anonymous  bool    `json:"anonymous"`
	// GatewayOrderID is the order the client created with the gateway, if any.
	GatewayOrderID string `json:"gateway_order_id"`
}

func (r *DonationCreateRequest) Normalize() {
	r.DonorName = strings.TrimSpace(r.DonorName)
	r.DonorEmail = NormalizeEmail(r.DonorEmail)
	r.DonorPhone = strings.TrimSpace(r.DonorPhone)
	r.TaxID = strings.ToUpper(strings.TrimSpace(r.TaxID))
	r.Message = strings.TrimSpace(r.Message)
	r.GatewayOrderID = strings.TrimSpace(r.GatewayOrderID)
}

func (r DonationCreateRequest) Validate() error {
	if err := validateAmount("amount", r.Amount, MinDonationAmount, MaxDonationAmount); err != nil {
		return err
	}
	if !r.Anonymous {
		if err := required("donor_name", r.DonorName); err != nil {
			return err
		}
	}
	return validateEmail("donor_email", r.DonorEmail)
}

// NewDonation builds a pending donation with a fresh transaction id.
func (r DonationCreateRequest) NewDonation(now time.Time) *Donation {
	return &Donation{
		TransactionID:  NewTransactionID(now),
		Amount:         r.Amount,
		DonorName:      r.DonorName,
		DonorEmail:     r.DonorEmail,
		DonorPhone:     r.DonorPhone,
		TaxID:          r.TaxID,
		Message:        r.Message,
		Anonymous:      r.Anonymous,
		GatewayOrderID: r.GatewayOrderID,
		Status:         DonationStatusPending,
	}
}

// NewTransactionID returns TXN_<unix millis>_<8 uppercase hex>.
func NewTransactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("TXN_%d_%s", now.UnixMilli(), suffix)
}

func ParseDonationStatus(s string) (DonationStatus, error) {
	return parseStatus(KindDonation, s, DonationStatuses)
}

// CanTransitionDonation reports whether an administrative update may move a
// donation from one status to another.
func CanTransitionDonation(from, to DonationStatus) bool {
	if from == to {
		return true
	}
	return slices.Contains(donationTransitions[from], to)
}

// PaymentProof is what the client submits after paying at the gateway. The
// donation is resolved by TransactionID, or by the order id recorded at
// creation when TransactionID is empty.
type PaymentProof struct {
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id"`
	Signature     string `json:"signature"`
}

func (p *PaymentProof) Normalize() {
	p.TransactionID = strings.TrimSpace(p.TransactionID)
	p.OrderID = strings.TrimSpace(p.OrderID)
	p.PaymentID = strings.TrimSpace(p.PaymentID)
	p.Signature = strings.ToLower(strings.TrimSpace(p.Signature))
}

func (p PaymentProof) Validate() error {
	if err := required("order_id", p.OrderID); err != nil {
		return err
	}
	if err := required("payment_id", p.PaymentID); err != nil {
		return err
	}
	return required("signature", p.Signature)
}
