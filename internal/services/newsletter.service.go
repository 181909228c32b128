package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/internal/repository"
)

type SubscriberRepository interface {
	Create(ctx context.Context, s *model.Subscriber) (*model.Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*model.Subscriber, error)
	List(ctx context.Context, f model.ListFilter) ([]*model.Subscriber, int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.SubscriberStatus) (*model.Change[*model.Subscriber], error)
}

type NewsletterService struct {
	repo     SubscriberRepository
	notifier Notifier
}

func NewNewsletterService(repo SubscriberRepository, notifier Notifier) *NewsletterService {
	return &NewsletterService{repo: repo, notifier: notifier}
}

// Subscribe adds the address, or reactivates it when it was unsubscribed
// or bounced earlier. An address that is already active is a conflict.
func (s *NewsletterService) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.Subscriber, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if existing.Status == model.SubscriberStatusActive {
			return nil, fmt.Errorf("%w: %s is already subscribed", model.ErrConflict, req.Email)
		}
		change, err := s.repo.UpdateStatus(ctx, existing.ID, model.SubscriberStatusActive)
		return finish(ctx, s.notifier, change, err)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, translate(err)
	}

	sub, err := s.repo.Create(ctx, &model.Subscriber{
		Email:  req.Email,
		Name:   req.Name,
		Status: model.SubscriberStatusActive,
	})
	if err != nil {
		return nil, translate(err)
	}
	s.notifier.OnCreated(ctx, sub)
	return sub, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	req := model.SubscribeRequest{Email: email}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sub, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, translate(err)
	}
	if sub.Status != model.SubscriberStatusActive {
		return sub, nil
	}
	change, err := s.repo.UpdateStatus(ctx, sub.ID, model.SubscriberStatusUnsubscribed)
	return finish(ctx, s.notifier, change, err)
}

func (s *NewsletterService) List(ctx context.Context, f model.ListFilter) ([]*model.Subscriber, int64, error) {
	if f.Status != "" {
		if _, err := model.ParseSubscriberStatus(f.Status); err != nil {
			return nil, 0, err
		}
	}
	list, total, err := s.repo.List(ctx, f)
	return list, total, translate(err)
}

func (s *NewsletterService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Subscriber, error) {
	st, err := model.ParseSubscriberStatus(status)
	if err != nil {
		return nil, err
	}
	change, err := s.repo.UpdateStatus(ctx, id, st)
	return finish(ctx, s.notifier, change, err)
}
