package model

import (
	"fmt"
	"strings"
	"time"
)

type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

type Event struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      *time.Time  `json:"ends_at,omitempty"`
	Capacity    int         `json:"capacity"` // 0 means unlimited
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (e *Event) NotifyKind() Kind        { return KindEvent }
func (e *Event) NotifyID() int64         { return e.ID }
func (e *Event) NotifyStatus() string    { return string(e.Status) }
func (e *Event) NotifyRecipient() string { return "" }

type EventCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity"`
}

func (r *EventCreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
}

func (r EventCreateRequest) Validate() error {
	if err := required("title", r.Title); err != nil {
		return err
	}
	if r.StartsAt.IsZero() {
		return fmt.Errorf("%w: starts_at is required", ErrValidation)
	}
	if r.EndsAt != nil && r.EndsAt.Before(r.StartsAt) {
		return fmt.Errorf("%w: ends_at is before starts_at", ErrValidation)
	}
	if r.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrValidation)
	}
	return nil
}

func (r EventCreateRequest) NewEvent() *Event {
	return &Event{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
		Capacity:    r.Capacity,
		Status:      EventStatusUpcoming,
	}
}

type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
	RegistrationStatusAttended  RegistrationStatus = "attended"
)

var RegistrationStatuses = []RegistrationStatus{
	RegistrationStatusPending,
	RegistrationStatusConfirmed,
	RegistrationStatusCancelled,
	RegistrationStatusAttended,
}

type EventRegistration struct {
	ID        int64              `json:"id"`
	EventID   int64              `json:"event_id"`
	Event     *Event             `json:"event,omitempty"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone,omitempty"`
	Guests    int                `json:"guests"`
	Status    RegistrationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (r *EventRegistration) NotifyKind() Kind        { return KindEventRegistration }
func (r *EventRegistration) NotifyID() int64         { return r.ID }
func (r *EventRegistration) NotifyStatus() string    { return string(r.Status) }
func (r *EventRegistration) NotifyRecipient() string { return r.Email }

// EventTitle is used by templates; the event is not always loaded.
func (r *EventRegistration) EventTitle() string {
	if r.Event == nil {
		return ""
	}
	return r.Event.Title
}

type RegistrationCreateRequest struct {
	EventID int64  `json:"-"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Guests  int    `json:"guests"`
}

func (r *RegistrationCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

func (r RegistrationCreateRequest) Validate() error {
	if r.EventID <= 0 {
		return fmt.Errorf("%w: event id is required", ErrValidation)
	}
	if err := required("name", r.Name); err != nil {
		return err
	}
	if r.Guests < 0 {
		return fmt.Errorf("%w: guests must not be negative", ErrValidation)
	}
	return validateEmail("email", r.Email)
}

func (r RegistrationCreateRequest) NewRegistration() *EventRegistration {
	return &EventRegistration{
		EventID: r.EventID,
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Guests:  r.Guests,
		Status:  RegistrationStatusPending,
	}
}

func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	return parseStatus(KindEventRegistration, s, RegistrationStatuses)
}
