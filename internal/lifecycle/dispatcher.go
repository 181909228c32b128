package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/internal/notify"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/nimasrn/donor-hub/pkg/prom"
	"go.uber.org/multierr"
)

// Deliverer is satisfied by *notify.Sender.
type Deliverer interface {
	Deliver(ctx context.Context, env notify.Envelope, to string) (string, error)
}

// AudienceResolver lists fan-out recipients at the moment a hook fires.
type AudienceResolver interface {
	ActiveEmails(ctx context.Context) ([]string, error)
}

type Options struct {
	// AdminAddress receives a copy of new submissions. Empty disables it.
	AdminAddress string
}

// Dispatcher turns entity lifecycle events into notification tasks. Its
// methods never fail: delivery errors stay inside the submitted tasks.
type Dispatcher struct {
	sender   Deliverer
	audience AudienceResolver
	executor Executor
	opts     Options
	stats    *Stats
}

func NewDispatcher(sender Deliverer, audience AudienceResolver, executor Executor, stats *Stats, opts Options) *Dispatcher {
	if stats == nil {
		stats = NewStats()
	}
	return &Dispatcher{
		sender:   sender,
		audience: audience,
		executor: executor,
		opts:     opts,
		stats:    stats,
	}
}

func (d *Dispatcher) Stats() StatsSnapshot {
	return d.stats.Snapshot()
}

// kinds whose new records are copied to the admin address
var adminCopy = map[model.Kind]bool{
	model.KindDonation:          true,
	model.KindVolunteer:         true,
	model.KindEventRegistration: true,
	model.KindContact:           true,
}

// kinds whose creation is announced to every active subscriber
var fanOut = map[model.Kind]bool{
	model.KindProject: true,
	model.KindEvent:   true,
}

func (d *Dispatcher) OnCreated(ctx context.Context, entity model.Notifiable) {
	if entity == nil {
		return
	}
	kind := entity.NotifyKind()

	if fanOut[kind] {
		env := notify.Created(entity, notify.AudienceSubscriber)
		d.executor.Submit(ctx, Task{
			Name: fmt.Sprintf("%s:%d:created:fanout", kind, entity.NotifyID()),
			Run:  func(ctx context.Context) error { return d.fanOut(ctx, env) },
		})
		return
	}

	if to := entity.NotifyRecipient(); to != "" {
		d.submit(ctx, notify.Created(entity, notify.AudienceRecipient), to)
	}
	if adminCopy[kind] && d.opts.AdminAddress != "" {
		d.submit(ctx, notify.Created(entity, notify.AudienceAdmin), d.opts.AdminAddress)
	}
}

// OnStatusChanged notifies the entity's recipient, but only when the status
// actually changed.
func (d *Dispatcher) OnStatusChanged(ctx context.Context, entity model.Notifiable, old, new string) {
	if entity == nil {
		return
	}
	if old == new {
		d.stats.recordSkipped()
		logger.Debug("[lifecycle] status unchanged, no notification", "kind", entity.NotifyKind(), "id", entity.NotifyID(), "status", new)
		return
	}

	to := entity.NotifyRecipient()
	if to == "" {
		return
	}
	d.submit(ctx, notify.StatusChanged(entity, old, new, notify.AudienceRecipient), to)
}

func (d *Dispatcher) submit(ctx context.Context, env notify.Envelope, to string) {
	d.executor.Submit(ctx, Task{
		Name: fmt.Sprintf("%s:%d:%s:%s", env.Kind, env.Entity.NotifyID(), env.Action, env.Audience),
		Run:  func(ctx context.Context) error { return d.deliver(ctx, env, to) },
	})
}

func (d *Dispatcher) deliver(ctx context.Context, env notify.Envelope, to string) error {
	start := time.Now()
	id, err := d.sender.Deliver(ctx, env, to)
	if err != nil {
		d.stats.recordFailed(time.Since(start))
		outcome := "failed"
		if notify.IsTimeout(err) {
			outcome = "timeout"
		}
		prom.IncNotification(string(env.Kind), string(env.Action), outcome)
		return err
	}

	d.stats.recordSent(time.Since(start))
	prom.IncNotification(string(env.Kind), string(env.Action), "sent")
	logger.Info("[lifecycle] notification sent",
		"kind", env.Kind,
		"id", env.Entity.NotifyID(),
		"action", env.Action,
		"to", to,
		"delivery_id", id,
	)
	return nil
}

// fanOut resolves the audience now and sends one message per recipient. A
// failing recipient does not stop the others; all failures are returned
// together.
func (d *Dispatcher) fanOut(ctx context.Context, env notify.Envelope) error {
	if d.audience == nil {
		return nil
	}
	recipients, err := d.audience.ActiveEmails(ctx)
	if err != nil {
		return fmt.Errorf("%w: resolve audience: %w", model.ErrNotification, err)
	}
	prom.ObserveFanoutAudience(len(recipients))

	var errs error
	for _, to := range recipients {
		errs = multierr.Append(errs, d.deliver(ctx, env, to))
	}
	if errs != nil {
		failed := len(multierr.Errors(errs))
		logger.Warn("[lifecycle] fan-out finished with failures",
			"kind", env.Kind,
			"id", env.Entity.NotifyID(),
			"recipients", len(recipients),
			"failed", failed,
		)
	}
	return errs
}
