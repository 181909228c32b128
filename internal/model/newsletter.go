package model

import (
	"strings"
	"time"
)

type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
	SubscriberStatusBounced      SubscriberStatus = "bounced"
)

var SubscriberStatuses = []SubscriberStatus{
	SubscriberStatusActive,
	SubscriberStatusUnsubscribed,
	SubscriberStatusBounced,
}

type Subscriber struct {
	ID        int64            `json:"id"`
	Email     string           `json:"email"`
	Name      string           `json:"name,omitempty"`
	Status    SubscriberStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (s *Subscriber) NotifyKind() Kind        { return KindNewsletter }
func (s *Subscriber) NotifyID() int64         { return s.ID }
func (s *Subscriber) NotifyStatus() string    { return string(s.Status) }
func (s *Subscriber) NotifyRecipient() string { return s.Email }

type SubscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (r *SubscribeRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r SubscribeRequest) Validate() error {
	return validateEmail("email", r.Email)
}

func ParseSubscriberStatus(s string) (SubscriberStatus, error) {
	return parseStatus(KindNewsletter, s, SubscriberStatuses)
}
