package services

import (
	"context"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/logger"
)

type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Project, int64, error)
}

type ProjectService struct {
	repo     ProjectRepository
	notifier Notifier
}

func NewProjectService(repo ProjectRepository, notifier Notifier) *ProjectService {
	return &ProjectService{repo: repo, notifier: notifier}
}

// Create publishes a project; active subscribers are told about it.
func (s *ProjectService) Create(ctx context.Context, req model.ProjectCreateRequest) (*model.Project, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repo.Create(ctx, req.NewProject())
	if err != nil {
		return nil, translate(err)
	}
	logger.Info("project published", "id", p.ID, "title", p.Title)
	s.notifier.OnCreated(ctx, p)
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, f model.ListFilter) ([]*model.Project, int64, error) {
	list, total, err := s.repo.List(ctx, f)
	return list, total, translate(err)
}
