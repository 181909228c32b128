package repository

import (
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type VolunteerEntity struct {
	ID           int64     `db:"id"           gorm:"primaryKey;autoIncrement;column:id"`
	Name         string    `db:"name"         gorm:"column:name;not null"`
	Email        string    `db:"email"        gorm:"column:email;not null;index"`
	Phone        string    `db:"phone"        gorm:"column:phone"`
	Skills       string    `db:"skills"       gorm:"column:skills"`
	Availability string    `db:"availability" gorm:"column:availability"`
	Message      string    `db:"message"      gorm:"column:message"`
	Status       string    `db:"status"       gorm:"column:status;not null;default:pending;index"`
	CreatedAt    time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `db:"updated_at"   gorm:"column:updated_at;autoUpdateTime"`
}

func (VolunteerEntity) TableName() string {
	return "volunteers"
}

func (e *VolunteerEntity) GetStatus() string { return e.Status }

func (e *VolunteerEntity) SetStatus(status string, at time.Time) {
	e.Status = status
	e.UpdatedAt = at
}

func toVolunteerEntity(v *model.Volunteer) *VolunteerEntity {
	if v == nil {
		return nil
	}
	return &VolunteerEntity{
		ID:           v.ID,
		Name:         v.Name,
		Email:        v.Email,
		Phone:        v.Phone,
		Skills:       v.Skills,
		Availability: v.Availability,
		Message:      v.Message,
		Status:       string(v.Status),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func toVolunteerModel(e *VolunteerEntity) *model.Volunteer {
	if e == nil {
		return nil
	}
	return &model.Volunteer{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Phone:        e.Phone,
		Skills:       e.Skills,
		Availability: e.Availability,
		Message:      e.Message,
		Status:       model.VolunteerStatus(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
