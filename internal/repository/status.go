package repository

import (
	"context"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// statusRow is implemented by every entity that carries a status column.
type statusRow[E any] interface {
	*E
	GetStatus() string
	SetStatus(status string, at time.Time)
}

// AllowFunc decides whether a row may move from old to new. nil allows all.
type AllowFunc func(old, new string) bool

// transitionStatus locks the row, applies status and reports the old value.
// Setting the current status again writes nothing.
func transitionStatus[E any, P statusRow[E]](ctx context.Context, db *pg.DB, id int64, status string, allowed AllowFunc) (P, string, error) {
	var (
		row P = new(E)
		old string
	)
	err := db.WithinTransaction(ctx, func(ctx context.Context) error {
		err := db.Write(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(row).
			Error
		if err != nil {
			return mapError(err)
		}

		old = row.GetStatus()
		if old == status {
			return nil
		}
		if allowed != nil && !allowed(old, status) {
			return ErrTransitionDenied
		}

		now := time.Now().UTC()
		err = db.Write(ctx).
			Model(row).
			Updates(map[string]any{"status": status, "updated_at": now}).
			Error
		if err != nil {
			return err
		}
		row.SetStatus(status, now)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return row, old, nil
}

func listByStatus[E any](q *gorm.DB, f model.ListFilter) ([]*E, int64, error) {
	q = q.Model(new(E))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at ASC, id ASC"
	if f.Desc {
		order = "created_at DESC, id DESC"
	}
	limit, offset := pageOf(f.Limit, f.Offset)

	var entities []*E
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
