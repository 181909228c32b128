package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/nimasrn/donor-hub/pkg/logger"
)

// LogTransport writes messages to the log instead of sending them. It is
// used when no mail provider is configured.
type LogTransport struct{}

func (LogTransport) Send(_ context.Context, msg *Message) (string, error) {
	id := uuid.NewString()
	logger.Info("[notify] mail (log transport)",
		"delivery_id", id,
		"to", msg.To,
		"subject", msg.Subject,
		"attachments", len(msg.Attachments),
	)
	return id, nil
}
