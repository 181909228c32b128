package repository

import (
	"context"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/pg"
)

type VolunteerRepository struct {
	*pg.DB
}

func NewVolunteerRepository(db *pg.DB) *VolunteerRepository {
	return &VolunteerRepository{
		db,
	}
}

func (r *VolunteerRepository) Create(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error) {
	entity := toVolunteerEntity(v)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toVolunteerModel(entity), nil
}

func (r *VolunteerRepository) GetByID(ctx context.Context, id int64) (*model.Volunteer, error) {
	var entity VolunteerEntity
	if err := r.Read(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toVolunteerModel(&entity), nil
}

func (r *VolunteerRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Volunteer, int64, error) {
	entities, total, err := listByStatus[VolunteerEntity](r.Read(ctx), f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*model.Volunteer, len(entities))
	for i, e := range entities {
		out[i] = toVolunteerModel(e)
	}
	return out, total, nil
}

func (r *VolunteerRepository) UpdateStatus(ctx context.Context, id int64, status model.VolunteerStatus) (*model.Change[*model.Volunteer], error) {
	entity, old, err := transitionStatus[VolunteerEntity](ctx, r.DB, id, string(status), nil)
	if err != nil {
		return nil, err
	}
	return &model.Change[*model.Volunteer]{Entity: toVolunteerModel(entity), Old: old, New: entity.Status}, nil
}
