package helpers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/nimasrn/donor-hub/internal/notify"
	"github.com/nimasrn/donor-hub/internal/repository"
	"github.com/nimasrn/donor-hub/pkg/pg"
	"github.com/nimasrn/donor-hub/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func SetupTestDB(t *testing.T) *pg.DB {
	return repository.NewTestDB(t)
}

// SetupTestRedis starts a miniredis for the test. Adapters are cached by
// connection name, so every test gets its own.
func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr := miniredis.RunT(t)

	adapter, err := redis.NewRedisAdapter("test-"+uuid.NewString(), "test:", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

// RecordingTransport keeps every message it is asked to send. Addresses in
// FailFor are refused with the mapped error.
type RecordingTransport struct {
	mu      sync.Mutex
	sent    []*notify.Message
	failFor map[string]error
}

func NewRecordingTransport() *RecordingTransport {
	return &RecordingTransport{failFor: make(map[string]error)}
}

func (r *RecordingTransport) FailFor(addr string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failFor[strings.ToLower(addr)] = err
}

func (r *RecordingTransport) Send(_ context.Context, msg *notify.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failFor[strings.ToLower(msg.To)]; ok {
		return "", err
	}
	r.sent = append(r.sent, msg)
	return fmt.Sprintf("rec-%d", len(r.sent)), nil
}

func (r *RecordingTransport) Sent() []*notify.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*notify.Message, len(r.sent))
	copy(out, r.sent)
	return out
}

// To returns the messages sent to addr, in order.
func (r *RecordingTransport) To(addr string) []*notify.Message {
	var out []*notify.Message
	for _, m := range r.Sent() {
		if strings.EqualFold(m.To, addr) {
			out = append(out, m)
		}
	}
	return out
}

func (r *RecordingTransport) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *RecordingTransport) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
