package services

import (
	"context"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/logger"
)

type VolunteerRepository interface {
	Create(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error)
	GetByID(ctx context.Context, id int64) (*model.Volunteer, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Volunteer, int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.VolunteerStatus) (*model.Change[*model.Volunteer], error)
}

type VolunteerService struct {
	repo     VolunteerRepository
	notifier Notifier
}

func NewVolunteerService(repo VolunteerRepository, notifier Notifier) *VolunteerService {
	return &VolunteerService{repo: repo, notifier: notifier}
}

func (s *VolunteerService) Apply(ctx context.Context, req model.VolunteerCreateRequest) (*model.Volunteer, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	v, err := s.repo.Create(ctx, req.NewVolunteer())
	if err != nil {
		return nil, translate(err)
	}
	logger.Info("volunteer application received", "id", v.ID)
	s.notifier.OnCreated(ctx, v)
	return v, nil
}

func (s *VolunteerService) Get(ctx context.Context, id int64) (*model.Volunteer, error) {
	v, err := s.repo.GetByID(ctx, id)
	return v, translate(err)
}

func (s *VolunteerService) List(ctx context.Context, f model.ListFilter) ([]*model.Volunteer, int64, error) {
	if f.Status != "" {
		if _, err := model.ParseVolunteerStatus(f.Status); err != nil {
			return nil, 0, err
		}
	}
	list, total, err := s.repo.List(ctx, f)
	return list, total, translate(err)
}

func (s *VolunteerService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Volunteer, error) {
	st, err := model.ParseVolunteerStatus(status)
	if err != nil {
		return nil, err
	}
	change, err := s.repo.UpdateStatus(ctx, id, st)
	return finish(ctx, s.notifier, change, err)
}
