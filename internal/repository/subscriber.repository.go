package repository

import (
	"context"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/pg"
)

type SubscriberRepository struct {
	*pg.DB
}

func NewSubscriberRepository(db *pg.DB) *SubscriberRepository {
	return &SubscriberRepository{
		db,
	}
}

// Create returns ErrDuplicate when the email is already subscribed.
func (r *SubscriberRepository) Create(ctx context.Context, s *model.Subscriber) (*model.Subscriber, error) {
	entity := toSubscriberEntity(s)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toSubscriberModel(entity), nil
}

func (r *SubscriberRepository) GetByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	var entity SubscriberEntity
	if err := r.Read(ctx).Where("email = ?", email).First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toSubscriberModel(&entity), nil
}

func (r *SubscriberRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Subscriber, int64, error) {
	entities, total, err := listByStatus[SubscriberEntity](r.Read(ctx), f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*model.Subscriber, len(entities))
	for i, e := range entities {
		out[i] = toSubscriberModel(e)
	}
	return out, total, nil
}

func (r *SubscriberRepository) UpdateStatus(ctx context.Context, id int64, status model.SubscriberStatus) (*model.Change[*model.Subscriber], error) {
	entity, old, err := transitionStatus[SubscriberEntity](ctx, r.DB, id, string(status), nil)
	if err != nil {
		return nil, err
	}
	return &model.Change[*model.Subscriber]{Entity: toSubscriberModel(entity), Old: old, New: entity.Status}, nil
}

// ActiveEmails resolves the fan-out audience: every active subscriber.
func (r *SubscriberRepository) ActiveEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.Read(ctx).
		Model(&SubscriberEntity{}).
		Where("status = ?", string(model.SubscriberStatusActive)).
		Order("id ASC").
		Pluck("email", &emails).
		Error
	return emails, err
}
