package analytics

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkodi/alias-buddy/internal/config"
	"github.com/darkodi/alias-buddy/internal/logger"
)

type capturedEvent struct {
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Properties map[string]any `json:"properties"`
}

type batchServer struct {
	mu       sync.Mutex
	apiKeys  []string
	events   []capturedEvent
	requests int
	status   int
}

func (b *batchServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/batch/" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body = zr
	}

	var batch struct {
		APIKey string          `json:"api_key"`
		Batch  []capturedEvent `json:"batch"`
	}
	if err := json.NewDecoder(body).Decode(&batch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.requests++
	b.apiKeys = append(b.apiKeys, batch.APIKey)
	b.events = append(b.events, batch.Batch...)
	b.mu.Unlock()

	if b.status != 0 {
		w.WriteHeader(b.status)
		return
	}
	w.Write([]byte(`{"status":1}`))
}

func fastRetries(c *posthog.Config) {
	c.RetryAfter = func(int) time.Duration { return time.Millisecond }
}

func TestPostHogSinkDelivers(t *testing.T) {
	recv := &batchServer{}
	srv := httptest.NewServer(recv)
	defer srv.Close()

	sink, err := newPostHogSink(config.AnalyticsConfig{
		PostHogKey:  "phc_test",
		PostHogHost: srv.URL + "/",
		Timeout:     time.Second,
	}, logger.Discard(), fastRetries)
	require.NoError(t, err)

	sink.Capture(context.Background(), EventAliasGenerated, map[string]any{"quantity": 5})
	sink.Capture(context.Background(), EventAliasCopied, map[string]any{"distinct_id": "user-1"})
	require.NoError(t, sink.Close())

	recv.mu.Lock()
	defer recv.mu.Unlock()
	require.Len(t, recv.events, 2)
	assert.Equal(t, "phc_test", recv.apiKeys[0])

	first := recv.events[0]
	assert.Equal(t, EventAliasGenerated, first.Event)
	assert.NotEmpty(t, first.DistinctID)
	assert.Equal(t, float64(5), first.Properties["quantity"])

	assert.Equal(t, EventAliasCopied, recv.events[1].Event)
	assert.Equal(t, "user-1", recv.events[1].DistinctID)
}

func TestPostHogSinkSurvivesServerErrors(t *testing.T) {
	recv := &batchServer{status: http.StatusInternalServerError}
	srv := httptest.NewServer(recv)
	defer srv.Close()

	sink, err := newPostHogSink(config.AnalyticsConfig{PostHogKey: "k", PostHogHost: srv.URL}, logger.Discard(), fastRetries)
	require.NoError(t, err)

	sink.Capture(context.Background(), EventAliasesCleared, nil)
	require.NoError(t, sink.Close())

	recv.mu.Lock()
	delivered := recv.requests
	recv.mu.Unlock()
	assert.GreaterOrEqual(t, delivered, 1)

	// capturing after close is a no-op and a second Close is harmless
	sink.Capture(context.Background(), EventAliasesCleared, nil)
	assert.NoError(t, sink.Close())
}

func TestMultiFansOut(t *testing.T) {
	var a, b countingSink
	Multi{&a, &b, Nop{}, NewLogSink(logger.Discard())}.Capture(context.Background(), EventFormCleared, nil)

	assert.Equal(t, 1, a.n)
	assert.Equal(t, 1, b.n)
}

type countingSink struct{ n int }

func (c *countingSink) Capture(context.Context, string, map[string]any) { c.n++ }
