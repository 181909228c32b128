package services

import (
	"context"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/internal/repository"
	"github.com/nimasrn/donor-hub/pkg/logger"
)

type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) (*model.Donation, error)
	GetByID(ctx context.Context, id int64) (*model.Donation, error)
	GetByTransactionID(ctx context.Context, txnID string) (*model.Donation, error)
	GetByOrderID(ctx context.Context, orderID string) (*model.Donation, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Donation, int64, error) // results, totalCount
	UpdateStatus(ctx context.Context, id int64, status model.DonationStatus, allowed repository.AllowFunc) (*model.Change[*model.Donation], error)
	ApplyVerification(ctx context.Context, id int64, proof model.PaymentProof, status model.DonationStatus) (*model.Change[*model.Donation], error)
}

// DonationService owns the donation ledger: creation and administrative
// status changes.
type DonationService struct {
	repo     DonationRepository
	notifier Notifier
	now      func() time.Time
}

func NewDonationService(repo DonationRepository, notifier Notifier) *DonationService {
	return &DonationService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *DonationService) Create(ctx context.Context, req model.DonationCreateRequest) (*model.Donation, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.NewDonation(s.now()))
	if err != nil {
		return nil, translate(err)
	}
	logger.Info("donation created", "transaction_id", created.TransactionID, "amount", created.Amount)

	s.notifier.OnCreated(ctx, created)
	return created, nil
}

func (s *DonationService) Get(ctx context.Context, id int64) (*model.Donation, error) {
	d, err := s.repo.GetByID(ctx, id)
	return d, translate(err)
}

func (s *DonationService) GetByTransactionID(ctx context.Context, txnID string) (*model.Donation, error) {
	d, err := s.repo.GetByTransactionID(ctx, txnID)
	return d, translate(err)
}

func (s *DonationService) List(ctx context.Context, f model.ListFilter) ([]*model.Donation, int64, error) {
	if f.Status != "" {
		if _, err := model.ParseDonationStatus(f.Status); err != nil {
			return nil, 0, err
		}
	}
	list, total, err := s.repo.List(ctx, f)
	return list, total, translate(err)
}

// Transition applies an administrative status change. Moves outside the
// donation transition table fail with model.ErrInvalidState.
func (s *DonationService) Transition(ctx context.Context, id int64, status string) (*model.Donation, error) {
	st, err := model.ParseDonationStatus(status)
	if err != nil {
		return nil, err
	}

	change, err := s.repo.UpdateStatus(ctx, id, st, allowDonationTransition)
	d, err := finish(ctx, s.notifier, change, err)
	if err != nil {
		return nil, err
	}
	logger.Info("donation status updated", "transaction_id", d.TransactionID, "old", change.Old, "new", change.New)
	return d, nil
}

func allowDonationTransition(old, new string) bool {
	return model.CanTransitionDonation(model.DonationStatus(old), model.DonationStatus(new))
}
