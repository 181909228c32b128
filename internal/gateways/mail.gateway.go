package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/donor-hub/internal/notify"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/valyala/fasthttp"
)

const (
	sendPath   = "/api/v1/mail/send"
	healthPath = "/health"
)

var (
	ErrNoAvailableProviders = errors.New("no available mail providers")
	// ErrRejected marks a 4xx answer; retrying elsewhere will not help.
	ErrRejected = errors.New("mail rejected by provider")
)

type ProviderConfig struct {
	Name   string
	URL    string
	Weight int
}

type MailConfig struct {
	Providers               []ProviderConfig
	APIKey                  string
	Timeout                 time.Duration
	MaxRetries              int
	RetryDelay              time.Duration
	MaxConns                int
	HealthCheckInterval     time.Duration
	CircuitBreakerThreshold int
	CircuitBreakerTimeout   time.Duration
}

func (c *MailConfig) withDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 200 * time.Millisecond
	}
	if c.MaxConns <= 0 {
		c.MaxConns = 64
	}
	if c.HealthCheckInterval <= 0 {
		c.HealthCheckInterval = 30 * time.Second
	}
	if c.CircuitBreakerThreshold <= 0 {
		c.CircuitBreakerThreshold = 5
	}
	if c.CircuitBreakerTimeout <= 0 {
		c.CircuitBreakerTimeout = 30 * time.Second
	}
}

type sendRequest struct {
	ID          string              `json:"id"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	Subject     string              `json:"subject"`
	HTML        string              `json:"html"`
	Text        string              `json:"text,omitempty"`
	Attachments []notify.Attachment `json:"attachments,omitempty"`
}

type sendResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// MailClient is a notify.Transport that posts messages to one of several
// HTTP mail providers, preferring the best scoring one and failing over on
// errors.
type MailClient struct {
	config    MailConfig
	providers []*Provider

	stopCh    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewMailClient(config MailConfig) (*MailClient, error) {
	if len(config.Providers) == 0 {
		return nil, errors.New("at least one mail provider is required")
	}
	config.withDefaults()

	c := &MailClient{
		config: config,
		stopCh: make(chan struct{}),
	}
	for _, pc := range config.Providers {
		if pc.URL == "" {
			return nil, fmt.Errorf("mail provider %q has no url", pc.Name)
		}
		httpClient := &fasthttp.Client{
			Name:                "donor-hub-mail",
			MaxConnsPerHost:     config.MaxConns,
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: time.Minute,
		}
		c.providers = append(c.providers, NewProvider(pc.Name, pc.URL, pc.Weight, httpClient))
		logger.Info("[mail] provider registered", "name", pc.Name, "url", pc.URL, "weight", pc.Weight)
	}

	c.wg.Add(1)
	go c.healthLoop()

	return c, nil
}

// pick returns the highest scoring available provider not in skip.
func (c *MailClient) pick(skip map[*Provider]bool) (*Provider, error) {
	var (
		best      *Provider
		bestScore float64
	)
	for _, p := range c.providers {
		if skip[p] {
			continue
		}
		if s := p.Score(); s > bestScore {
			best, bestScore = p, s
		}
	}
	if best == nil {
		return nil, ErrNoAvailableProviders
	}
	return best, nil
}

// Send implements notify.Transport.
func (c *MailClient) Send(ctx context.Context, msg *notify.Message) (string, error) {
	body, err := json.Marshal(sendRequest{
		ID:          uuid.NewString(),
		From:        msg.From,
		To:          msg.To,
		Subject:     msg.Subject,
		HTML:        msg.HTML,
		Text:        msg.Text,
		Attachments: msg.Attachments,
	})
	if err != nil {
		return "", fmt.Errorf("marshal mail request: %w", err)
	}

	tried := make(map[*Provider]bool, len(c.providers))
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}

		p, err := c.pick(tried)
		if errors.Is(err, ErrNoAvailableProviders) && len(tried) > 0 {
			// every provider failed once; allow a second round
			clear(tried)
			p, err = c.pick(tried)
		}
		if err != nil {
			lastErr = err
			continue
		}

		start := time.Now()
		raw, err := c.do(ctx, p, fasthttp.MethodPost, sendPath, body)
		if err != nil {
			if errors.Is(err, ErrRejected) {
				return "", err
			}
			p.metrics.RecordFailure()
			c.tripIfNeeded(p)
			tried[p] = true
			lastErr = err
			logger.Warn("[mail] send failed", "provider", p.name, "attempt", attempt+1, "error", err)
			continue
		}
		p.metrics.RecordSuccess(time.Since(start))

		var resp sendResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return "", fmt.Errorf("decode mail response: %w", err)
		}
		logger.Debug("[mail] accepted", "provider", p.name, "id", resp.ID, "status", resp.Status)
		return resp.ID, nil
	}

	return "", fmt.Errorf("mail not sent after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

func (c *MailClient) do(ctx context.Context, p *Provider, method, path string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.url + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	if c.config.APIKey != "" {
		req.Header.Set("X-Api-Key", c.config.APIKey)
	}
	if body != nil {
		req.SetBody(body)
	}

	deadline := time.Now().Add(c.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, p.name, err)
	}

	code := resp.StatusCode()
	switch {
	case code == fasthttp.StatusOK || code == fasthttp.StatusAccepted:
	case code >= 400 && code < 500 && code != fasthttp.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, code, resp.Body())
	default:
		return nil, fmt.Errorf("unexpected status %d from %s", code, p.name)
	}

	return slices.Clone(resp.Body()), nil
}

func (c *MailClient) tripIfNeeded(p *Provider) {
	fails := p.metrics.ConsecutiveFails.Load()
	if fails < int32(c.config.CircuitBreakerThreshold) || p.State() == StateCircuitOpen {
		return
	}
	p.openCircuit(c.config.CircuitBreakerTimeout)
	logger.Warn("[mail] circuit opened", "provider", p.name, "consecutive_fails", fails, "cooldown", c.config.CircuitBreakerTimeout)
}

func (c *MailClient) healthLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.CheckHealth(context.Background())
		case <-c.stopCh:
			return
		}
	}
}

// CheckHealth pings every provider and updates its state. Open circuits
// are left to cool down on their own.
func (c *MailClient) CheckHealth(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	for _, p := range c.providers {
		old := p.State()
		if old == StateCircuitOpen {
			continue
		}

		next := StateUnhealthy
		if c.healthy(ctx, p) {
			next = StateHealthy
			if p.metrics.SuccessRate() < 0.8 {
				next = StateDegraded
			}
		}
		if next != old {
			p.SetState(next)
			logger.Info("[mail] provider state changed", "provider", p.name, "from", old.String(), "to", next.String())
		}
	}
}

func (c *MailClient) healthy(ctx context.Context, p *Provider) bool {
	raw, err := c.do(ctx, p, fasthttp.MethodGet, healthPath, nil)
	if err != nil {
		return false
	}
	var h struct {
		Status string `json:"status"`
	}
	return json.Unmarshal(raw, &h) == nil && (h.Status == "ok" || h.Status == "healthy")
}

// Stats returns per-provider statistics ordered by score.
func (c *MailClient) Stats() []ProviderStats {
	stats := make([]ProviderStats, 0, len(c.providers))
	for _, p := range c.providers {
		stats = append(stats, p.Stats())
	}
	slices.SortStableFunc(stats, func(a, b ProviderStats) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return stats
}

func (c *MailClient) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopCh)
	})
	c.wg.Wait()
	logger.Info("[mail] client closed")
	return nil
}
