package model

import (
	"strings"
	"time"
)

type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusReplied  ContactStatus = "replied"
	ContactStatusArchived ContactStatus = "archived"
)

var ContactStatuses = []ContactStatus{
	ContactStatusNew,
	ContactStatusRead,
	ContactStatusReplied,
	ContactStatusArchived,
}

type ContactSubmission struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (c *ContactSubmission) NotifyKind() Kind        { return KindContact }
func (c *ContactSubmission) NotifyID() int64         { return c.ID }
func (c *ContactSubmission) NotifyStatus() string    { return string(c.Status) }
func (c *ContactSubmission) NotifyRecipient() string { return c.Email }

type ContactCreateRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r *ContactCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r ContactCreateRequest) Validate() error {
	if err := required("name", r.Name); err != nil {
		return err
	}
	if err := validateEmail("email", r.Email); err != nil {
		return err
	}
	return required("message", r.Message)
}

func (r ContactCreateRequest) NewSubmission() *ContactSubmission {
	return &ContactSubmission{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Subject: r.Subject,
		Message: r.Message,
		Status:  ContactStatusNew,
	}
}

func ParseContactStatus(s string) (ContactStatus, error) {
	return parseStatus(KindContact, s, ContactStatuses)
}
