package repository

import (
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type SubscriberEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Email     string    `db:"email"      gorm:"column:email;not null;uniqueIndex"`
	Name      string    `db:"name"       gorm:"column:name"`
	Status    string    `db:"status"     gorm:"column:status;not null;default:active;index"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (SubscriberEntity) TableName() string {
	return "newsletter_subscribers"
}

func (e *SubscriberEntity) GetStatus() string { return e.Status }

func (e *SubscriberEntity) SetStatus(status string, at time.Time) {
	e.Status = status
	e.UpdatedAt = at
}

func toSubscriberEntity(s *model.Subscriber) *SubscriberEntity {
	if s == nil {
		return nil
	}
	return &SubscriberEntity{
		ID:        s.ID,
		Email:     s.Email,
		Name:      s.Name,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSubscriberModel(e *SubscriberEntity) *model.Subscriber {
	if e == nil {
		return nil
	}
	return &model.Subscriber{
		ID:        e.ID,
		Email:     e.Email,
		Name:      e.Name,
		Status:    model.SubscriberStatus(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
