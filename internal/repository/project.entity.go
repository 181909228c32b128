package repository

import (
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type ProjectEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Title       string    `db:"title"       gorm:"column:title;not null"`
	Summary     string    `db:"summary"     gorm:"column:summary"`
	Description string    `db:"description" gorm:"column:description"`
	GoalAmount  float64   `db:"goal_amount" gorm:"column:goal_amount;type:numeric(14,2);not null;default:0"`
	Status      string    `db:"status"      gorm:"column:status;not null;default:active;index"`
	CreatedAt   time.Time `db:"created_at"  gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `db:"updated_at"  gorm:"column:updated_at;autoUpdateTime"`
}

func (ProjectEntity) TableName() string {
	return "projects"
}

func toProjectEntity(p *model.Project) *ProjectEntity {
	if p == nil {
		return nil
	}
	return &ProjectEntity{
		ID:          p.ID,
		Title:       p.Title,
		Summary:     p.Summary,
		Description: p.Description,
		GoalAmount:  p.GoalAmount,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectModel(e *ProjectEntity) *model.Project {
	if e == nil {
		return nil
	}
	return &model.Project{
		ID:          e.ID,
		Title:       e.Title,
		Summary:     e.Summary,
		Description: e.Description,
		GoalAmount:  e.GoalAmount,
		Status:      model.ProjectStatus(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
