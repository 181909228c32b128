package repository

import (
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type ContactEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `db:"name"       gorm:"column:name;not null"`
	Email     string    `db:"email"      gorm:"column:email;not null;index"`
	Phone     string    `db:"phone"      gorm:"column:phone"`
	Subject   string    `db:"subject"    gorm:"column:subject"`
	Message   string    `db:"message"    gorm:"column:message;not null"`
	Status    string    `db:"status"     gorm:"column:status;not null;default:new;index"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `db:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (ContactEntity) TableName() string {
	return "contact_submissions"
}

func (e *ContactEntity) GetStatus() string { return e.Status }

func (e *ContactEntity) SetStatus(status string, at time.Time) {
	e.Status = status
	e.UpdatedAt = at
}

func toContactEntity(c *model.ContactSubmission) *ContactEntity {
	if c == nil {
		return nil
	}
	return &ContactEntity{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Subject:   c.Subject,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toContactModel(e *ContactEntity) *model.ContactSubmission {
	if e == nil {
		return nil
	}
	return &model.ContactSubmission{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Subject:   e.Subject,
		Message:   e.Message,
		Status:    model.ContactStatus(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
