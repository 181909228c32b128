package repository

import (
	"context"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/pg"
)

type ProjectRepository struct {
	*pg.DB
}

func NewProjectRepository(db *pg.DB) *ProjectRepository {
	return &ProjectRepository{
		db,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	entity := toProjectEntity(p)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toProjectModel(entity), nil
}

func (r *ProjectRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Project, int64, error) {
	entities, total, err := listByStatus[ProjectEntity](r.Read(ctx), f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*model.Project, len(entities))
	for i, e := range entities {
		out[i] = toProjectModel(e)
	}
	return out, total, nil
}
