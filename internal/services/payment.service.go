package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimasrn/donor-hub/internal/locker"
	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/nimasrn/donor-hub/pkg/prom"
)

type SignatureVerifier interface {
	Verify(orderID, paymentID, signature string) bool
}

type Locker interface {
	Acquire(ctx context.Context, name string) (*locker.Lease, error)
}

const (
	outcomeCompleted = "completed"
	outcomeFailed    = "failed"
	outcomeDuplicate = "duplicate"
	outcomeConflict  = "conflict"
	outcomeRejected  = "rejected"
	outcomeError     = "error"
)

// PaymentService verifies gateway callbacks against the donation ledger.
type PaymentService struct {
	donations DonationRepository
	verifier  SignatureVerifier
	locker    Locker
	notifier  Notifier
}

// NewPaymentService wires the verifier. lock may be nil, in which case
// only the database row lock serialises concurrent verifications.
func NewPaymentService(donations DonationRepository, verifier SignatureVerifier, lock Locker, notifier Notifier) *PaymentService {
	return &PaymentService{
		donations: donations,
		verifier:  verifier,
		locker:    lock,
		notifier:  notifier,
	}
}

// Verify checks the proof and settles the donation. A valid signature
// completes it. A mismatch marks it failed and returns the stored record
// together with model.ErrInvalidSignature. Repeating a successful
// verification with the same identifiers is a no-op.
func (s *PaymentService) Verify(ctx context.Context, proof model.PaymentProof) (*model.Donation, error) {
	start := time.Now()
	d, outcome, err := s.verify(ctx, proof)
	prom.IncVerification(outcome)
	prom.ObserveVerificationDuration(time.Since(start).Seconds())

	if err != nil {
		logger.Warn("payment verification rejected",
			"transaction_id", proof.TransactionID, "order_id", proof.OrderID, "outcome", outcome, "error", err)
		return d, err
	}
	logger.Info("payment verified", "transaction_id", d.TransactionID, "outcome", outcome)
	return d, nil
}

func (s *PaymentService) verify(ctx context.Context, proof model.PaymentProof) (*model.Donation, string, error) {
	proof.Normalize()
	if err := proof.Validate(); err != nil {
		return nil, outcomeRejected, err
	}

	d, err := s.resolve(ctx, proof)
	if err != nil {
		return nil, outcomeOf(err), err
	}

	lease, err := s.acquire(ctx, d.TransactionID)
	if err != nil {
		return nil, outcomeError, err
	}
	defer func() { _ = lease.Release(context.WithoutCancel(ctx)) }()

	valid := s.verifier.Verify(proof.OrderID, proof.PaymentID, proof.Signature)

	switch d.Status {
	case model.DonationStatusPending:
	case model.DonationStatusCompleted:
		if !d.SamePayment(proof.OrderID, proof.PaymentID) {
			return nil, outcomeConflict, fmt.Errorf("%w: donation %s is already settled", model.ErrConflict, d.TransactionID)
		}
		if !valid {
			return d, outcomeRejected, fmt.Errorf("%w: transaction %s", model.ErrInvalidSignature, d.TransactionID)
		}
		return d, outcomeDuplicate, nil
	default:
		return nil, outcomeConflict, fmt.Errorf("%w: donation %s is %s", model.ErrConflict, d.TransactionID, d.Status)
	}

	status := model.DonationStatusCompleted
	if !valid {
		status = model.DonationStatusFailed
	}
	change, err := s.donations.ApplyVerification(ctx, d.ID, proof, status)
	settled, err := finish(ctx, s.notifier, change, err)
	if err != nil {
		return nil, outcomeOf(err), err
	}

	if !valid {
		return settled, outcomeFailed, fmt.Errorf("%w: transaction %s", model.ErrInvalidSignature, settled.TransactionID)
	}
	if !change.Changed() {
		return settled, outcomeDuplicate, nil
	}
	return settled, outcomeCompleted, nil
}

func (s *PaymentService) resolve(ctx context.Context, proof model.PaymentProof) (*model.Donation, error) {
	var (
		d   *model.Donation
		err error
	)
	if proof.TransactionID != "" {
		d, err = s.donations.GetByTransactionID(ctx, proof.TransactionID)
	} else {
		d, err = s.donations.GetByOrderID(ctx, proof.OrderID)
	}
	return d, translate(err)
}

// acquire takes the per-donation lease. A held lease means another
// verification is in flight and the caller should retry. When redis is
// down the row lock alone is relied on.
func (s *PaymentService) acquire(ctx context.Context, txnID string) (*locker.Lease, error) {
	if s.locker == nil {
		return nil, nil
	}
	lease, err := s.locker.Acquire(ctx, "verify:"+txnID)
	switch {
	case err == nil:
		return lease, nil
	case errors.Is(err, locker.ErrLockHeld):
		return nil, fmt.Errorf("%w: verification of %s already in progress", model.ErrTransient, txnID)
	case errors.Is(err, locker.ErrLockUnavailable):
		logger.Warn("verification lock unavailable, relying on row lock", "transaction_id", txnID, "error", err)
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %v", model.ErrTransient, err)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrValidation):
		return outcomeRejected
	case errors.Is(err, model.ErrConflict):
		return outcomeConflict
	}
	return outcomeError
}
