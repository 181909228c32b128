package notify

import "github.com/nimasrn/donor-hub/internal/model"

type Action string

const (
	ActionCreated       Action = "created"
	ActionStatusChanged Action = "status_changed"
)

// Audience selects which template variant a recipient gets.
type Audience string

const (
	AudienceRecipient  Audience = "recipient"
	AudienceAdmin      Audience = "admin"
	AudienceSubscriber Audience = "subscriber"
)

// Envelope is the immutable input of a render: an entity snapshot plus the
// transition that produced it.
type Envelope struct {
	Kind     model.Kind
	Action   Action
	Audience Audience
	Entity   model.Notifiable
	Old      string
	New      string
}

func Created(entity model.Notifiable, audience Audience) Envelope {
	return Envelope{
		Kind:     entity.NotifyKind(),
		Action:   ActionCreated,
		Audience: audience,
		Entity:   entity,
		New:      entity.NotifyStatus(),
	}
}

func StatusChanged(entity model.Notifiable, old, new string, audience Audience) Envelope {
	return Envelope{
		Kind:     entity.NotifyKind(),
		Action:   ActionStatusChanged,
		Audience: audience,
		Entity:   entity,
		Old:      old,
		New:      new,
	}
}
