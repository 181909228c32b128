package main

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	StatusAccepted = "ACCEPTED"
	StatusBounced  = "BOUNCED"
)

// Attachment mirrors the payload the API's mail client sends.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"content"`
}

type SendMailRequest struct {
	ID          string       `json:"id"`
	From        string       `json:"from" binding:"required"`
	To          string       `json:"to" binding:"required,email"`
	Subject     string       `json:"subject" binding:"required"`
	HTML        string       `json:"html"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

type SendMailResponse struct {
	ID         string    `json:"id"`
	Status     string    `json:"status"`
	AcceptedAt time.Time `json:"accepted_at"`
	ProviderID string    `json:"provider_id"`
}

type StoredMail struct {
	SendMailRequest
	ReceivedAt time.Time `json:"received_at"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	ProviderID  string    `json:"provider_id"`
	Timestamp   time.Time `json:"timestamp"`
	FailureRate float64   `json:"failure_rate"`
	Stored      int       `json:"stored"`
}

// Sink accepts mail, keeps the most recent messages in memory and can be
// told to fail a share of requests to exercise the client's failover.
type Sink struct {
	mu          sync.Mutex
	providerID  string
	apiKey      string
	failureRate float64
	minDelay    time.Duration
	maxDelay    time.Duration
	capacity    int
	mails       []StoredMail
	rng         *rand.Rand
}

func NewSink(apiKey string, failureRate float64, minDelay, maxDelay time.Duration, capacity int) *Sink {
	if capacity <= 0 {
		capacity = 200
	}
	return &Sink{
		providerID:  "MAILSINK_" + uuid.New().String()[:8],
		apiKey:      apiKey,
		failureRate: failureRate,
		minDelay:    minDelay,
		maxDelay:    maxDelay,
		capacity:    capacity,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Sink) delay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxDelay <= s.minDelay {
		return s.minDelay
	}
	return s.minDelay + time.Duration(s.rng.Int63n(int64(s.maxDelay-s.minDelay)))
}

func (s *Sink) shouldFail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.failureRate
}

func (s *Sink) store(req SendMailRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mails = append(s.mails, StoredMail{SendMailRequest: req, ReceivedAt: time.Now()})
	if over := len(s.mails) - s.capacity; over > 0 {
		s.mails = s.mails[over:]
	}
}

func (s *Sink) snapshot(to string) []StoredMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredMail, 0, len(s.mails))
	for _, m := range s.mails {
		if to == "" || m.To == to {
			out = append(out, m)
		}
	}
	return out
}

func (s *Sink) requireKey(c *gin.Context) {
	if s.apiKey != "" && c.GetHeader("X-Api-Key") != s.apiKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}
	c.Next()
}

func (s *Sink) SendMail(c *gin.Context) {
	var req SendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	time.Sleep(s.delay())

	if s.shouldFail() {
		log.Warn().Str("id", req.ID).Str("to", req.To).Msg("simulated provider failure")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "provider temporarily unavailable"})
		return
	}

	s.store(req)
	log.Info().
		Str("id", req.ID).
		Str("to", req.To).
		Str("subject", req.Subject).
		Int("attachments", len(req.Attachments)).
		Msg("mail accepted")

	c.JSON(http.StatusAccepted, SendMailResponse{
		ID:         req.ID,
		Status:     StatusAccepted,
		AcceptedAt: time.Now(),
		ProviderID: s.providerID,
	})
}

// ListMails returns stored mail, optionally filtered by ?to=.
func (s *Sink) ListMails(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.snapshot(c.Query("to"))})
}

func (s *Sink) ClearMails(c *gin.Context) {
	s.mu.Lock()
	s.mails = nil
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Sink) HealthCheck(c *gin.Context) {
	s.mu.Lock()
	resp := HealthResponse{
		Status:      "healthy",
		ProviderID:  s.providerID,
		Timestamp:   time.Now(),
		FailureRate: s.failureRate,
		Stored:      len(s.mails),
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, resp)
}

func (s *Sink) UpdateConfig(c *gin.Context) {
	var config struct {
		FailureRate *float64 `json:"failure_rate"`
	}
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	s.mu.Lock()
	if config.FailureRate != nil && *config.FailureRate >= 0 && *config.FailureRate <= 1.0 {
		s.failureRate = *config.FailureRate
		log.Info().Float64("rate", *config.FailureRate).Msg("updated failure rate")
	}
	rate := s.failureRate
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"failure_rate": rate})
}

func SetupRouter(s *Sink) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request processed")
	})

	v1 := router.Group("/api/v1", s.requireKey)
	{
		v1.POST("/mail/send", s.SendMail)
		v1.GET("/mail/messages", s.ListMails)
		v1.DELETE("/mail/messages", s.ClearMails)
		v1.PUT("/config", s.UpdateConfig)
	}
	router.GET("/health", s.HealthCheck)

	return router
}
