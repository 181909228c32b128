package model

import (
	"strings"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

type Project struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary,omitempty"`
	Description string        `json:"description,omitempty"`
	GoalAmount  float64       `json:"goal_amount"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (p *Project) NotifyKind() Kind        { return KindProject }
func (p *Project) NotifyID() int64         { return p.ID }
func (p *Project) NotifyStatus() string    { return string(p.Status) }
func (p *Project) NotifyRecipient() string { return "" }

type ProjectCreateRequest struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	GoalAmount  float64 `json:"goal_amount"`
}

func (r *ProjectCreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Description = strings.TrimSpace(r.Description)
}

// MaxGoalAmount is the first value that no longer fits NUMERIC(14,2).
const MaxGoalAmount = 1_000_000_000_000

func (r ProjectCreateRequest) Validate() error {
	if err := required("title", r.Title); err != nil {
		return err
	}
	return validateAmount("goal_amount", r.GoalAmount, 0, MaxGoalAmount)
}

func (r ProjectCreateRequest) NewProject() *Project {
	return &Project{
		Title:       r.Title,
		Summary:     r.Summary,
		Description: r.Description,
		GoalAmount:  r.GoalAmount,
		Status:      ProjectStatusActive,
	}
}
