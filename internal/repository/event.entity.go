package repository

import (
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type EventEntity struct {
	ID          int64      `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Title       string     `db:"title"       gorm:"column:title;not null"`
	Description string     `db:"description" gorm:"column:description"`
	Location    string     `db:"location"    gorm:"column:location"`
	StartsAt    time.Time  `db:"starts_at"   gorm:"column:starts_at;not null;index"`
	EndsAt      *time.Time `db:"ends_at"     gorm:"column:ends_at"`
	Capacity    int        `db:"capacity"    gorm:"column:capacity;not null;default:0"`
	Status      string     `db:"status"      gorm:"column:status;not null;default:upcoming;index"`
	CreatedAt   time.Time  `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (EventEntity) TableName() string {
	return "events"
}

type EventRegistrationEntity struct {
	ID        int64        `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	EventID   int64        `db:"event_id"   gorm:"column:event_id;not null;index"`
	Event     *EventEntity `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE"`
	Name      string       `db:"name"       gorm:"column:name;not null"`
	Email     string       `db:"email"      gorm:"column:email;not null;index"`
	Phone     string       `db:"phone"      gorm:"column:phone"`
	Guests    int          `db:"guests"     gorm:"column:guests;not null;default:0"`
	Status    string       `db:"status"     gorm:"column:status;not null;default:pending;index"`
	CreatedAt time.Time    `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time    `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (EventRegistrationEntity) TableName() string {
	return "event_registrations"
}

func (e *EventRegistrationEntity) GetStatus() string { return e.Status }

func (e *EventRegistrationEntity) SetStatus(status string, at time.Time) {
	e.Status = status
	e.UpdatedAt = at
}

func toEventEntity(ev *model.Event) *EventEntity {
	if ev == nil {
		return nil
	}
	return &EventEntity{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartsAt:    ev.StartsAt,
		EndsAt:      ev.EndsAt,
		Capacity:    ev.Capacity,
		Status:      string(ev.Status),
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
}

func toEventModel(e *EventEntity) *model.Event {
	if e == nil {
		return nil
	}
	return &model.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Capacity:    e.Capacity,
		Status:      model.EventStatus(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toRegistrationEntity(r *model.EventRegistration) *EventRegistrationEntity {
	if r == nil {
		return nil
	}
	return &EventRegistrationEntity{
		ID:        r.ID,
		EventID:   r.EventID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Guests:    r.Guests,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toRegistrationModel(e *EventRegistrationEntity) *model.EventRegistration {
	if e == nil {
		return nil
	}
	return &model.EventRegistration{
		ID:        e.ID,
		EventID:   e.EventID,
		Event:     toEventModel(e.Event),
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Guests:    e.Guests,
		Status:    model.RegistrationStatus(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
