// Package analytics captures product events. Delivery is best effort:
// failures are logged and never reach the caller.
package analytics

import (
	"context"

	"github.com/darkodi/alias-buddy/internal/logger"
)

// Event names
const (
	EventAliasGenerated   = "alias_generated"
	EventGenerationFailed = "alias_generation_failed"
	EventAliasesCleared   = "aliases_cleared"
	EventFormCleared      = "form_cleared"
	EventAliasesExported  = "aliases_exported"
	EventAliasCopied      = "alias_copied"
	EventShareClicked     = "share_clicked"
)

// Sink accepts an event name and free-form properties
type Sink interface {
	Capture(ctx context.Context, event string, props map[string]any)
}

// Nop discards every event
type Nop struct{}

func (Nop) Capture(context.Context, string, map[string]any) {}

// LogSink writes events to the structured log at debug level
type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log.Component("analytics")}
}

func (s *LogSink) Capture(ctx context.Context, event string, props map[string]any) {
	args := make([]any, 0, 2+2*len(props))
	args = append(args, "event", event)
	for k, v := range props {
		args = append(args, k, v)
	}
	s.log.DebugContext(ctx, "analytics event", args...)
}

// Multi fans every event out to several sinks
type Multi []Sink

func (m Multi) Capture(ctx context.Context, event string, props map[string]any) {
	for _, s := range m {
		s.Capture(ctx, event, props)
	}
}
