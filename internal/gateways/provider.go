package gateway

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"
)

type ProviderState int32

const (
	StateHealthy ProviderState = iota
	StateDegraded
	StateUnhealthy
	StateCircuitOpen
)

func (s ProviderState) String() string {
	switch s {
	case StateHealthy:
		return "HEALTHY"
	case StateDegraded:
		return "DEGRADED"
	case StateUnhealthy:
		return "UNHEALTHY"
	case StateCircuitOpen:
		return "CIRCUIT_OPEN"
	default:
		return "UNKNOWN"
	}
}

const latencyWindow = 100

// ProviderMetrics keeps lock-free counters plus a ring of recent latencies.
type ProviderMetrics struct {
	Requests         atomic.Int64
	Succeeded        atomic.Int64
	Failed           atomic.Int64
	LatencySumMs     atomic.Int64
	ConsecutiveFails atomic.Int32
	LastFailureUnix  atomic.Int64
	LastSuccessUnix  atomic.Int64

	mu      sync.Mutex
	ring    [latencyWindow]int64
	ringLen int
	ringPos int
}

func (m *ProviderMetrics) RecordSuccess(latency time.Duration) {
	ms := latency.Milliseconds()
	m.Requests.Add(1)
	m.Succeeded.Add(1)
	m.LatencySumMs.Add(ms)
	m.ConsecutiveFails.Store(0)
	m.LastSuccessUnix.Store(time.Now().Unix())

	m.mu.Lock()
	m.ring[m.ringPos] = ms
	m.ringPos = (m.ringPos + 1) % latencyWindow
	if m.ringLen < latencyWindow {
		m.ringLen++
	}
	m.mu.Unlock()
}

func (m *ProviderMetrics) RecordFailure() {
	m.Requests.Add(1)
	m.Failed.Add(1)
	m.ConsecutiveFails.Add(1)
	m.LastFailureUnix.Store(time.Now().Unix())
}

// AvgLatencyMs averages over successful requests only.
func (m *ProviderMetrics) AvgLatencyMs() int64 {
	n := m.Succeeded.Load()
	if n == 0 {
		return 0
	}
	return m.LatencySumMs.Load() / n
}

func (m *ProviderMetrics) SuccessRate() float64 {
	total := m.Requests.Load()
	if total == 0 {
		return 1
	}
	return float64(m.Succeeded.Load()) / float64(total)
}

func (m *ProviderMetrics) P95LatencyMs() int64 {
	m.mu.Lock()
	window := slices.Clone(m.ring[:m.ringLen])
	m.mu.Unlock()

	if len(window) == 0 {
		return 0
	}
	slices.Sort(window)
	idx := len(window) * 95 / 100
	if idx >= len(window) {
		idx = len(window) - 1
	}
	return window[idx]
}

// Provider is one upstream mail API endpoint.
type Provider struct {
	name    string
	url     string
	weight  int
	client  *fasthttp.Client
	metrics *ProviderMetrics

	state     atomic.Int32
	openUntil atomic.Int64 // unix nanos
}

func NewProvider(name, url string, weight int, client *fasthttp.Client) *Provider {
	if weight <= 0 {
		weight = 1
	}
	return &Provider{
		name:    name,
		url:     url,
		weight:  weight,
		client:  client,
		metrics: &ProviderMetrics{},
	}
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) State() ProviderState {
	return ProviderState(p.state.Load())
}

func (p *Provider) SetState(s ProviderState) {
	p.state.Store(int32(s))
}

// Available reports whether requests may be routed here. An open circuit
// whose cool-down elapsed is half-opened into the degraded state.
func (p *Provider) Available() bool {
	switch p.State() {
	case StateUnhealthy:
		return false
	case StateCircuitOpen:
		if time.Now().UnixNano() < p.openUntil.Load() {
			return false
		}
		p.state.CompareAndSwap(int32(StateCircuitOpen), int32(StateDegraded))
		return true
	}
	return true
}

func (p *Provider) openCircuit(cooldown time.Duration) {
	p.openUntil.Store(time.Now().Add(cooldown).UnixNano())
	p.SetState(StateCircuitOpen)
}

// Score ranks available providers; zero means do not use.
func (p *Provider) Score() float64 {
	if !p.Available() {
		return 0
	}

	latency := 1.0
	if avg := p.metrics.AvgLatencyMs(); avg > 0 {
		latency = max(0.05, 1-float64(avg)/5000)
	}
	penalty := max(0.1, 1-0.1*float64(p.metrics.ConsecutiveFails.Load()))
	if p.State() == StateDegraded {
		penalty *= 0.5
	}

	reliability := 0.2 + 0.8*p.metrics.SuccessRate()
	return float64(p.weight) * reliability * latency * penalty
}

type ProviderStats struct {
	Name             string  `json:"name"`
	State            string  `json:"state"`
	Score            float64 `json:"score"`
	Requests         int64   `json:"requests"`
	Succeeded        int64   `json:"succeeded"`
	Failed           int64   `json:"failed"`
	SuccessRate      float64 `json:"success_rate"`
	AvgLatencyMs     int64   `json:"avg_latency_ms"`
	P95LatencyMs     int64   `json:"p95_latency_ms"`
	ConsecutiveFails int32   `json:"consecutive_fails"`
}

func (p *Provider) Stats() ProviderStats {
	return ProviderStats{
		Name:             p.name,
		State:            p.State().String(),
		Score:            p.Score(),
		Requests:         p.metrics.Requests.Load(),
		Succeeded:        p.metrics.Succeeded.Load(),
		Failed:           p.metrics.Failed.Load(),
		SuccessRate:      p.metrics.SuccessRate(),
		AvgLatencyMs:     p.metrics.AvgLatencyMs(),
		P95LatencyMs:     p.metrics.P95LatencyMs(),
		ConsecutiveFails: p.metrics.ConsecutiveFails.Load(),
	}
}
