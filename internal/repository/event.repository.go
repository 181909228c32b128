package repository

import (
	"context"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/pg"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	*pg.DB
}

func NewEventRepository(db *pg.DB) *EventRepository {
	return &EventRepository{
		db,
	}
}

func (r *EventRepository) Create(ctx context.Context, ev *model.Event) (*model.Event, error) {
	entity := toEventEntity(ev)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toEventModel(entity), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var entity EventEntity
	if err := r.Read(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toEventModel(&entity), nil
}

// LockByID loads the event under a row lock. Call it inside
// WithinTransaction so concurrent registrations see each other's seats.
func (r *EventRepository) LockByID(ctx context.Context, id int64) (*model.Event, error) {
	var entity EventEntity
	err := r.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		return nil, mapError(err)
	}
	return toEventModel(&entity), nil
}

// ListUpcoming returns events starting at or after from, soonest first.
func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time, limit, offset int) ([]*model.Event, error) {
	limit, offset = pageOf(limit, offset)

	var entities []*EventEntity
	err := r.Read(ctx).
		Where("starts_at >= ? AND status = ?", from, string(model.EventStatusUpcoming)).
		Order("starts_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	out := make([]*model.Event, len(entities))
	for i, e := range entities {
		out[i] = toEventModel(e)
	}
	return out, nil
}

// CountSeats sums attendees plus guests of registrations that hold a seat.
func (r *EventRepository) CountSeats(ctx context.Context, eventID int64) (int64, error) {
	var seats int64
	err := r.Read(ctx).
		Model(&EventRegistrationEntity{}).
		Select("COALESCE(SUM(1 + guests), 0)").
		Where("event_id = ? AND status IN ?", eventID, []string{
			string(model.RegistrationStatusPending),
			string(model.RegistrationStatusConfirmed),
			string(model.RegistrationStatusAttended),
		}).
		Scan(&seats).
		Error
	return seats, err
}

func (r *EventRepository) CreateRegistration(ctx context.Context, reg *model.EventRegistration) (*model.EventRegistration, error) {
	entity := toRegistrationEntity(reg)
	if err := r.Write(ctx).Omit("Event").Create(entity).Error; err != nil {
		return nil, mapError(err)
	}
	out := toRegistrationModel(entity)
	out.Event = reg.Event
	return out, nil
}

func (r *EventRepository) GetRegistration(ctx context.Context, id int64) (*model.EventRegistration, error) {
	var entity EventRegistrationEntity
	if err := r.Read(ctx).Preload("Event").Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, mapError(err)
	}
	return toRegistrationModel(&entity), nil
}

func (r *EventRepository) ListRegistrations(ctx context.Context, eventID int64, f model.ListFilter) ([]*model.EventRegistration, int64, error) {
	q := r.Read(ctx)
	if eventID > 0 {
		q = q.Where("event_id = ?", eventID)
	}
	entities, total, err := listByStatus[EventRegistrationEntity](q, f)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*model.EventRegistration, len(entities))
	for i, e := range entities {
		out[i] = toRegistrationModel(e)
	}
	return out, total, nil
}

func (r *EventRepository) UpdateRegistrationStatus(ctx context.Context, id int64, status model.RegistrationStatus) (*model.Change[*model.EventRegistration], error) {
	entity, old, err := transitionStatus[EventRegistrationEntity](ctx, r.DB, id, string(status), nil)
	if err != nil {
		return nil, err
	}
	reg := toRegistrationModel(entity)
	if ev, err := r.GetByID(ctx, reg.EventID); err == nil {
		reg.Event = ev
	}
	return &model.Change[*model.EventRegistration]{Entity: reg, Old: old, New: entity.Status}, nil
}
