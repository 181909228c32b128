package notify

import "context"

type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

// Message is a fully rendered email ready for a transport.
type Message struct {
	From        string       `json:"from"`
	To          string       `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Transport delivers a message and returns the provider's delivery id.
type Transport interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, msg *Message) (string, error)

func (f TransportFunc) Send(ctx context.Context, msg *Message) (string, error) {
	return f(ctx, msg)
}
