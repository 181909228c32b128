package repository

import (
	"context"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/pg"
)

type ContactRepository struct {
	*pg.DB
}

func NewContactRepository(db *pg.DB) *ContactRepository {
	return &ContactRepository{
		db,
	}
}

func (r *ContactRepository) Create(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error) {
	entity := toContactEntity(c)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toContactModel(entity), nil
}

func (r *ContactRepository) List(ctx context.Context, f model.ListFilter) ([]*model.ContactSubmission, int64, error) {
	entities, total, err := listByStatus[ContactEntity](r.Read(ctx), f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*model.ContactSubmission, len(entities))
	for i, e := range entities {
		out[i] = toContactModel(e)
	}
	return out, total, nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus) (*model.Change[*model.ContactSubmission], error) {
	entity, old, err := transitionStatus[ContactEntity](ctx, r.DB, id, string(status), nil)
	if err != nil {
		return nil, err
	}
	return &model.Change[*model.ContactSubmission]{Entity: toContactModel(entity), Old: old, New: entity.Status}, nil
}
