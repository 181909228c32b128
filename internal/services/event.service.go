package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/logger"
)

type EventRepository interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, ev *model.Event) (*model.Event, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	LockByID(ctx context.Context, id int64) (*model.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit, offset int) ([]*model.Event, error)
	CountSeats(ctx context.Context, eventID int64) (int64, error)
	CreateRegistration(ctx context.Context, reg *model.EventRegistration) (*model.EventRegistration, error)
	ListRegistrations(ctx context.Context, eventID int64, f model.ListFilter) ([]*model.EventRegistration, int64, error)
	UpdateRegistrationStatus(ctx context.Context, id int64, status model.RegistrationStatus) (*model.Change[*model.EventRegistration], error)
}

type EventService struct {
	repo     EventRepository
	notifier Notifier
	now      func() time.Time
}

func NewEventService(repo EventRepository, notifier Notifier) *EventService {
	return &EventService{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateEvent schedules an event and announces it to active subscribers.
func (s *EventService) CreateEvent(ctx context.Context, req model.EventCreateRequest) (*model.Event, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ev, err := s.repo.Create(ctx, req.NewEvent())
	if err != nil {
		return nil, translate(err)
	}
	logger.Info("event scheduled", "id", ev.ID, "starts_at", ev.StartsAt)
	s.notifier.OnCreated(ctx, ev)
	return ev, nil
}

func (s *EventService) ListEvents(ctx context.Context, f model.ListFilter) ([]*model.Event, error) {
	list, err := s.repo.ListUpcoming(ctx, s.now(), f.Limit, f.Offset)
	return list, translate(err)
}

// Register books seats for the attendee and any guests. Registration is
// refused once the event is no longer upcoming or its capacity is used up.
func (s *EventService) Register(ctx context.Context, req model.RegistrationCreateRequest) (*model.EventRegistration, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var reg *model.EventRegistration
	err := s.repo.WithinTransaction(ctx, func(ctx context.Context) error {
		ev, err := s.repo.LockByID(ctx, req.EventID)
		if err != nil {
			return err
		}
		if ev.Status != model.EventStatusUpcoming {
			return fmt.Errorf("%w: event %d is %s", model.ErrInvalidState, ev.ID, ev.Status)
		}
		if ev.Capacity > 0 {
			taken, err := s.repo.CountSeats(ctx, ev.ID)
			if err != nil {
				return err
			}
			if taken+int64(1+req.Guests) > int64(ev.Capacity) {
				return fmt.Errorf("%w: event %d has %d seats left", model.ErrConflict, ev.ID, max(int64(ev.Capacity)-taken, 0))
			}
		}

		r := req.NewRegistration()
		r.Event = ev
		reg, err = s.repo.CreateRegistration(ctx, r)
		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	s.notifier.OnCreated(ctx, reg)
	return reg, nil
}

func (s *EventService) ListRegistrations(ctx context.Context, eventID int64, f model.ListFilter) ([]*model.EventRegistration, int64, error) {
	if f.Status != "" {
		if _, err := model.ParseRegistrationStatus(f.Status); err != nil {
			return nil, 0, err
		}
	}
	list, total, err := s.repo.ListRegistrations(ctx, eventID, f)
	return list, total, translate(err)
}

func (s *EventService) UpdateRegistrationStatus(ctx context.Context, id int64, status string) (*model.EventRegistration, error) {
	st, err := model.ParseRegistrationStatus(status)
	if err != nil {
		return nil, err
	}
	change, err := s.repo.UpdateRegistrationStatus(ctx, id, st)
	return finish(ctx, s.notifier, change, err)
}
