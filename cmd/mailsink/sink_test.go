package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(router *gin.Engine, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Api-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSink_SendAndList(t *testing.T) {
	router := SetupRouter(NewSink("k", 0, 0, 0, 10))

	w := do(router, http.MethodPost, "/api/v1/mail/send",
		`{"id":"m1","from":"no-reply@example.org","to":"ada@example.org","subject":"Thanks","html":"<p>hi</p>"}`, "k")
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp SendMailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "m1", resp.ID)
	assert.Equal(t, StatusAccepted, resp.Status)

	w = do(router, http.MethodGet, "/api/v1/mail/messages?to=ada@example.org", "", "k")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []StoredMail `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Thanks", list.Items[0].Subject)
}

func TestSink_RejectsBadKeyAndPayload(t *testing.T) {
	router := SetupRouter(NewSink("k", 0, 0, 0, 10))

	w := do(router, http.MethodPost, "/api/v1/mail/send", `{}`, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodPost, "/api/v1/mail/send", `{"from":"a@example.org","to":"not-an-email","subject":"x"}`, "k")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSink_SimulatedFailure(t *testing.T) {
	router := SetupRouter(NewSink("", 1, 0, 0, 10))

	w := do(router, http.MethodPost, "/api/v1/mail/send",
		`{"from":"no-reply@example.org","to":"ada@example.org","subject":"x"}`, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSink_KeepsMostRecent(t *testing.T) {
	s := NewSink("", 0, 0, 0, 2)
	s.store(SendMailRequest{ID: "1"})
	s.store(SendMailRequest{ID: "2"})
	s.store(SendMailRequest{ID: "3"})

	got := s.snapshot("")
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestSink_Health(t *testing.T) {
	router := SetupRouter(NewSink("k", 0.25, 0, 0, 10))

	w := do(router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var h HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, 0.25, h.FailureRate)
}
