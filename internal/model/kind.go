package model

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
)

// Kind names an entity type that takes part in lifecycle notifications.
type Kind string

const (
	KindDonation          Kind = "donation"
	KindVolunteer         Kind = "volunteer"
	KindEvent             Kind = "event"
	KindEventRegistration Kind = "event_registration"
	KindContact           Kind = "contact"
	KindNewsletter        Kind = "newsletter"
	KindProject           Kind = "project"
)

// Notifiable is implemented by every entity the dispatcher can fire hooks for.
type Notifiable interface {
	NotifyKind() Kind
	NotifyID() int64
	NotifyStatus() string
	// NotifyRecipient is the address the entity's own notifications go to,
	// empty when the entity has no personal recipient.
	NotifyRecipient() string
}

// Change describes the outcome of a mutating repository call.
type Change[T any] struct {
	Entity T
	Old    string
	New    string
}

func (c *Change[T]) Changed() bool {
	return c != nil && c.Old != c.New
}

// ListFilter controls List queries on the status-bearing tables.
type ListFilter struct {
	Status string
	Limit  int // default 50
	Offset int
	Desc   bool // order by created_at
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateEmail(field, s string) error {
	if s == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return fmt.Errorf("%w: %s is not a valid email address", ErrValidation, field)
	}
	return nil
}

func required(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

func parseStatus[S ~string](kind Kind, s string, all []S) (S, error) {
	st := S(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(all, st) {
		return "", fmt.Errorf("%w: %q is not a %s status", ErrInvalidState, s, kind)
	}
	return st, nil
}
