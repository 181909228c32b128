package model

import (
	"strings"
	"time"
)

type VolunteerStatus string

const (
	VolunteerStatusPending  VolunteerStatus = "pending"
	VolunteerStatusActive   VolunteerStatus = "active"
	VolunteerStatusInactive VolunteerStatus = "inactive"
	VolunteerStatusRejected VolunteerStatus = "rejected"
)

var VolunteerStatuses = []VolunteerStatus{
	VolunteerStatusPending,
	VolunteerStatusActive,
	VolunteerStatusInactive,
	VolunteerStatusRejected,
}

type Volunteer struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone,omitempty"`
	Skills       string          `json:"skills,omitempty"`
	Availability string          `json:"availability,omitempty"`
	Message      string          `json:"message,omitempty"`
	Status       VolunteerStatus `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (v *Volunteer) NotifyKind() Kind        { return KindVolunteer }
func (v *Volunteer) NotifyID() int64         { return v.ID }
func (v *Volunteer) NotifyStatus() string    { return string(v.Status) }
func (v *Volunteer) NotifyRecipient() string { return v.Email }

type VolunteerCreateRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Skills       string `json:"skills"`
	Availability string `json:"availability"`
	Message      string `json:"message"`
}

func (r *VolunteerCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Skills = strings.TrimSpace(r.Skills)
	r.Availability = strings.TrimSpace(r.Availability)
	r.Message = strings.TrimSpace(r.Message)
}

func (r VolunteerCreateRequest) Validate() error {
	if err := required("name", r.Name); err != nil {
		return err
	}
	return validateEmail("email", r.Email)
}

func (r VolunteerCreateRequest) NewVolunteer() *Volunteer {
	return &Volunteer{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Skills:       r.Skills,
		Availability: r.Availability,
		Message:      r.Message,
		Status:       VolunteerStatusPending,
	}
}

func ParseVolunteerStatus(s string) (VolunteerStatus, error) {
	return parseStatus(KindVolunteer, s, VolunteerStatuses)
}
