package notify

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type SenderConfig struct {
	From        string
	SendTimeout time.Duration
}

// Sender renders an envelope and hands it to a transport.
type Sender struct {
	renderer  *Renderer
	transport Transport
	config    SenderConfig
}

func NewSender(renderer *Renderer, transport Transport, config SenderConfig) *Sender {
	if config.SendTimeout <= 0 {
		config.SendTimeout = 10 * time.Second
	}
	return &Sender{
		renderer:  renderer,
		transport: transport,
		config:    config,
	}
}

// Deliver sends env to one address and returns the transport's delivery id.
// Every failure, including a timeout, is wrapped in model.ErrNotification.
func (s *Sender) Deliver(ctx context.Context, env Envelope, to string) (string, error) {
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return "", fmt.Errorf("%w: invalid recipient %q: %v", model.ErrNotification, to, err)
	}

	msg, err := s.renderer.Render(env)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrNotification, err)
	}
	msg.From = s.config.From
	msg.To = addr.Address

	ctx, cancel := context.WithTimeout(ctx, s.config.SendTimeout)
	defer cancel()

	type result struct {
		id  string
		err error
	}
	done := make(chan result, 1)
	go func() {
		id, err := s.transport.Send(ctx, msg)
		done <- result{id, err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("%w: send to %s: %w", model.ErrNotification, msg.To, res.err)
		}
		return res.id, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: send to %s: %w", model.ErrNotification, msg.To, ctx.Err())
	}
}

// IsTimeout reports whether a delivery error was caused by the send timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, model.ErrNotification) && errors.Is(err, context.DeadlineExceeded)
}
