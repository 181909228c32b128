package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/internal/repository"
)

// Notifier is the lifecycle hook surface the services call after a write
// has been committed. *lifecycle.Dispatcher implements it.
type Notifier interface {
	OnCreated(ctx context.Context, entity model.Notifiable)
	OnStatusChanged(ctx context.Context, entity model.Notifiable, old, new string)
}

// translate maps repository errors onto the API error taxonomy. Anything
// unrecognised is treated as a retryable infrastructure failure.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrInvalidState),
		errors.Is(err, model.ErrInvalidSignature),
		errors.Is(err, model.ErrConflict),
		errors.Is(err, model.ErrTransient):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %v", model.ErrNotFound, err)
	case errors.Is(err, repository.ErrTransitionDenied):
		return fmt.Errorf("%w: %v", model.ErrInvalidState, err)
	case errors.Is(err, repository.ErrPaymentConflict), errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	}
	return fmt.Errorf("%w: %v", model.ErrTransient, err)
}

// finish translates err or, on success, fires the status hook when the
// change is real.
func finish[T model.Notifiable](ctx context.Context, notifier Notifier, change *model.Change[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, translate(err)
	}
	if change.Changed() {
		notifier.OnStatusChanged(ctx, change.Entity, change.Old, change.New)
	}
	return change.Entity, nil
}
