package repository

import (
	"context"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DonationRepository struct {
	*pg.DB
}

func NewDonationRepository(db *pg.DB) *DonationRepository {
	return &DonationRepository{
		db,
	}
}

func (r *DonationRepository) Create(ctx context.Context, d *model.Donation) (*model.Donation, error) {
	entity := toDonationEntity(d)

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}

	return toDonationModel(entity), nil
}

func (r *DonationRepository) GetByID(ctx context.Context, id int64) (*model.Donation, error) {
	return r.first(ctx, r.Read(ctx).Where("id = ?", id))
}

func (r *DonationRepository) GetByTransactionID(ctx context.Context, txnID string) (*model.Donation, error) {
	return r.first(ctx, r.Read(ctx).Where("transaction_id = ?", txnID))
}

func (r *DonationRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Donation, error) {
	return r.first(ctx, r.Read(ctx).Where("gateway_order_id = ?", orderID).Order("id DESC"))
}

func (r *DonationRepository) first(_ context.Context, q *gorm.DB) (*model.Donation, error) {
	var entity DonationEntity
	if err := q.First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toDonationModel(&entity), nil
}

func (r *DonationRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Donation, int64, error) {
	entities, total, err := listByStatus[DonationEntity](r.Read(ctx), f)
	if err != nil {
		return nil, 0, err
	}
	return toDonationModels(entities), total, nil
}

// UpdateStatus moves a donation to status under a row lock.
func (r *DonationRepository) UpdateStatus(ctx context.Context, id int64, status model.DonationStatus, allowed AllowFunc) (*model.Change[*model.Donation], error) {
	entity, old, err := transitionStatus[DonationEntity](ctx, r.DB, id, string(status), allowed)
	if err != nil {
		return nil, err
	}
	return &model.Change[*model.Donation]{
		Entity: toDonationModel(entity),
		Old:    old,
		New:    entity.Status,
	}, nil
}

// ApplyVerification records the gateway identifiers on a pending donation
// and moves it to status. A completed donation carrying the same identifiers
// is returned unchanged. Any other non-pending donation, or one already
// bound to different identifiers, yields ErrPaymentConflict.
func (r *DonationRepository) ApplyVerification(ctx context.Context, id int64, proof model.PaymentProof, status model.DonationStatus) (*model.Change[*model.Donation], error) {
	var (
		entity DonationEntity
		old    string
	)
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		err := r.Write(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&entity).
			Error
		if err != nil {
			return mapError(err)
		}
		old = entity.Status

		switch model.DonationStatus(entity.Status) {
		case model.DonationStatusPending:
		case model.DonationStatusCompleted:
			if entity.GatewayOrderID == proof.OrderID && entity.GatewayPaymentID == proof.PaymentID {
				return nil
			}
			return ErrPaymentConflict
		default:
			return ErrPaymentConflict
		}

		if entity.GatewayOrderID != "" && entity.GatewayOrderID != proof.OrderID {
			return ErrPaymentConflict
		}
		if entity.GatewayPaymentID != "" && entity.GatewayPaymentID != proof.PaymentID {
			return ErrPaymentConflict
		}

		now := time.Now().UTC()
		result := r.Write(ctx).
			Model(&DonationEntity{}).
			Where("id = ? AND status = ?", id, entity.Status).
			Updates(map[string]any{
				"gateway_order_id":   proof.OrderID,
				"gateway_payment_id": proof.PaymentID,
				"gateway_signature":  proof.Signature,
				"status":             string(status),
				"updated_at":         now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}

		entity.GatewayOrderID = proof.OrderID
		entity.GatewayPaymentID = proof.PaymentID
		entity.GatewaySignature = proof.Signature
		entity.SetStatus(string(status), now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &model.Change[*model.Donation]{
		Entity: toDonationModel(&entity),
		Old:    old,
		New:    entity.Status,
	}, nil
}
