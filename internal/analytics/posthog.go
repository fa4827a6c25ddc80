package analytics

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/posthog/posthog-go"

	"github.com/darkodi/alias-buddy/internal/config"
	"github.com/darkodi/alias-buddy/internal/logger"
)

// PostHogSink forwards events to PostHog through the official client,
// which batches them and sends from its own goroutine.
type PostHogSink struct {
	client     posthog.Client
	distinctID string
	log        *logger.Logger

	mu     sync.Mutex
	closed bool
}

// NewPostHogSink creates the client. Events without a "distinct_id"
// property are attributed to a per-process anonymous ID.
func NewPostHogSink(cfg config.AnalyticsConfig, log *logger.Logger) (*PostHogSink, error) {
	return newPostHogSink(cfg, log, nil)
}

func newPostHogSink(cfg config.AnalyticsConfig, log *logger.Logger, tune func(*posthog.Config)) (*PostHogSink, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	s := &PostHogSink{
		distinctID: uuid.NewString(),
		log:        log.Component("posthog"),
	}

	pc := posthog.Config{
		Endpoint:  strings.TrimRight(cfg.PostHogHost, "/"),
		Transport: &http.Transport{ResponseHeaderTimeout: timeout},
		Callback:  deliveryCallback{log: s.log},
	}
	if tune != nil {
		tune(&pc)
	}

	client, err := posthog.NewWithConfig(cfg.PostHogKey, pc)
	if err != nil {
		return nil, err
	}
	s.client = client
	return s, nil
}

func (s *PostHogSink) Capture(_ context.Context, event string, props map[string]any) {
	distinctID := s.distinctID
	if id, ok := props["distinct_id"].(string); ok && id != "" {
		distinctID = id
	}

	properties := posthog.NewProperties()
	for k, v := range props {
		properties.Set(k, v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	err := s.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Timestamp:  time.Now().UTC(),
		Properties: properties,
	})
	if err != nil {
		s.log.Warn("failed to queue analytics event", "event", event, "error", err.Error())
	}
}

// Close stops accepting events and flushes the queued ones
func (s *PostHogSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	return s.client.Close()
}

// deliveryCallback logs batches the client gave up on
type deliveryCallback struct {
	log *logger.Logger
}

func (deliveryCallback) Success(posthog.APIMessage) {}

func (c deliveryCallback) Failure(_ posthog.APIMessage, err error) {
	c.log.Warn("failed to deliver analytics event", "error", err.Error())
}
