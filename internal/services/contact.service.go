package services

import (
	"context"

	"github.com/nimasrn/donor-hub/internal/model"
)

type ContactRepository interface {
	Create(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.ContactSubmission, int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.ContactStatus) (*model.Change[*model.ContactSubmission], error)
}

type ContactService struct {
	repo     ContactRepository
	notifier Notifier
}

func NewContactService(repo ContactRepository, notifier Notifier) *ContactService {
	return &ContactService{repo: repo, notifier: notifier}
}

func (s *ContactService) Submit(ctx context.Context, req model.ContactCreateRequest) (*model.ContactSubmission, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, req.NewSubmission())
	if err != nil {
		return nil, translate(err)
	}
	s.notifier.OnCreated(ctx, c)
	return c, nil
}

func (s *ContactService) List(ctx context.Context, f model.ListFilter) ([]*model.ContactSubmission, int64, error) {
	if f.Status != "" {
		if _, err := model.ParseContactStatus(f.Status); err != nil {
			return nil, 0, err
		}
	}
	list, total, err := s.repo.List(ctx, f)
	return list, total, translate(err)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id int64, status string) (*model.ContactSubmission, error) {
	st, err := model.ParseContactStatus(status)
	if err != nil {
		return nil, err
	}
	change, err := s.repo.UpdateStatus(ctx, id, st)
	return finish(ctx, s.notifier, change, err)
}
