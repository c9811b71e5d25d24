package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBotAPI struct {
	mu       sync.Mutex
	sent     []map[string]string
	failures int32
	updates  string
}

func (f *fakeBotAPI) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if atomic.AddInt32(&f.failures, -1) >= 0 {
				http.Error(w, `{"ok":false}`, http.StatusTooManyRequests)
				return
			}
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			f.mu.Lock()
			f.sent = append(f.sent, payload)
			f.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true}`))
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			f.mu.Lock()
			body := f.updates
			f.updates = `{"ok":true,"result":[]}`
			f.mu.Unlock()
			_, _ = w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	})
}

func (f *fakeBotAPI) messages() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.sent...)
}

func newTestNotifier(t *testing.T, api *fakeBotAPI) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("TOKEN", "42", "")
	n.BaseURL = srv.URL
	n.RetryBase = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	api := &fakeBotAPI{}
	n := newTestNotifier(t, api)

	require.NoError(t, n.Send("<b>hi</b>"))
	msgs := api.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "42", msgs[0]["chat_id"])
	assert.Equal(t, "HTML", msgs[0]["parse_mode"])
	assert.Equal(t, "<b>hi</b>", msgs[0]["text"])
}

func TestSend_StatusError(t *testing.T) {
	api := &fakeBotAPI{failures: 1}
	n := newTestNotifier(t, api)

	err := n.Send("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestSendWithRetry(t *testing.T) {
	api := &fakeBotAPI{failures: 2}
	n := newTestNotifier(t, api)

	require.NoError(t, n.SendWithRetry(context.Background(), "retry me", 3))
	assert.Len(t, api.messages(), 1)
}

func TestSendWithRetry_Exhausted(t *testing.T) {
	api := &fakeBotAPI{failures: 10}
	n := newTestNotifier(t, api)

	err := n.SendWithRetry(context.Background(), "never", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 retries exhausted")
	assert.Empty(t, api.messages())
}

func TestSendWithRetry_ContextCancelled(t *testing.T) {
	api := &fakeBotAPI{failures: 10}
	n := newTestNotifier(t, api)
	n.RetryBase = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.SendWithRetry(ctx, "x", 5), context.Canceled)
}

func TestStartPolling(t *testing.T) {
	api := &fakeBotAPI{updates: `{"ok":true,"result":[
		{"update_id":7,"message":{"text":"  /watchlist "}},
		{"update_id":8}
	]}`}
	n := newTestNotifier(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []string
	done := make(chan struct{})
	go func() {
		n.StartPolling(ctx, func(cmd string) string {
			got = append(got, cmd)
			cancel()
			return "AAPL, MSFT"
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop after cancel")
	}
	assert.Equal(t, []string{"/watchlist"}, got)
	msgs := api.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "AAPL, MSFT", msgs[0]["text"])
}

func TestNoopSender(t *testing.T) {
	var s Sender = NoopSender{}
	assert.NoError(t, s.Send("x"))
	assert.NoError(t, s.SendWithRetry(context.Background(), "x", 3))
}
