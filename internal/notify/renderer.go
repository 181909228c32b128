package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type compiled struct {
	subject *texttemplate.Template
	text    *texttemplate.Template
	html    *htmltemplate.Template
	receipt bool
}

// Renderer turns an Envelope into message content. It never performs I/O.
type Renderer struct {
	org     string
	sets    map[string]*compiled
	receipt *texttemplate.Template
}

type renderData struct {
	Org    string
	Kind   model.Kind
	Entity model.Notifiable
	Old    string
	New    string
}

func templateFuncs(currency string) map[string]any {
	return map[string]any{
		"money": func(v float64) string { return fmt.Sprintf("%s %.2f", currency, v) },
		"date":  func(t time.Time) string { return t.Format("02 Jan 2006 15:04 MST") },
		"kind":  func(k model.Kind) string { return strings.ReplaceAll(string(k), "_", " ") },
		"name": func(s string) string {
			if s == "" {
				return "friend"
			}
			return s
		},
	}
}

// NewRenderer parses the built-in templates.
func NewRenderer(org, currency string) (*Renderer, error) {
	funcs := templateFuncs(currency)
	r := &Renderer{
		org:  org,
		sets: make(map[string]*compiled, len(builtinTemplates)),
	}

	for key, set := range builtinTemplates {
		c := &compiled{receipt: set.Receipt}
		var err error
		if c.subject, err = texttemplate.New(key + ":subject").Funcs(funcs).Parse(set.Subject); err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", key, err)
		}
		if set.Text != "" {
			if c.text, err = texttemplate.New(key + ":text").Funcs(funcs).Parse(set.Text); err != nil {
				return nil, fmt.Errorf("parse %s text: %w", key, err)
			}
		}
		if c.html, err = htmltemplate.New(key + ":html").Funcs(funcs).Parse(set.HTML); err != nil {
			return nil, fmt.Errorf("parse %s html: %w", key, err)
		}
		r.sets[key] = c
	}

	var err error
	if r.receipt, err = texttemplate.New("receipt").Funcs(funcs).Parse(receiptTemplate); err != nil {
		return nil, fmt.Errorf("parse receipt: %w", err)
	}
	return r, nil
}

func (r *Renderer) lookup(env Envelope) (*compiled, error) {
	base := fmt.Sprintf("%s/%s/%s", env.Kind, env.Action, env.Audience)
	keys := []string{
		base + "/" + env.New,
		base,
		fmt.Sprintf("generic/%s/%s", env.Action, env.Audience),
	}
	for _, k := range keys {
		if c, ok := r.sets[k]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("no template for %s", base)
}

// Render produces subject and bodies for env. To and From are left empty.
func (r *Renderer) Render(env Envelope) (*Message, error) {
	if env.Entity == nil {
		return nil, fmt.Errorf("render %s/%s: nil entity", env.Kind, env.Action)
	}
	c, err := r.lookup(env)
	if err != nil {
		return nil, err
	}

	data := renderData{
		Org:    r.org,
		Kind:   env.Kind,
		Entity: env.Entity,
		Old:    env.Old,
		New:    env.New,
	}

	var buf bytes.Buffer
	msg := &Message{}

	if err := c.subject.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render subject: %w", err)
	}
	msg.Subject = strings.TrimSpace(buf.String())

	if c.text != nil {
		buf.Reset()
		if err := c.text.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("render text: %w", err)
		}
		msg.Text = buf.String()
	}

	buf.Reset()
	if err := c.html.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	msg.HTML = buf.String()

	if c.receipt {
		buf.Reset()
		if err := r.receipt.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("render receipt: %w", err)
		}
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    receiptFilename(env.Entity),
			ContentType: "text/plain; charset=utf-8",
			Content:     bytes.Clone(buf.Bytes()),
		})
	}

	return msg, nil
}

func receiptFilename(e model.Notifiable) string {
	if d, ok := e.(*model.Donation); ok {
		return "receipt-" + d.TransactionID + ".txt"
	}
	return fmt.Sprintf("receipt-%d.txt", e.NotifyID())
}
