package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("ar-viewer")

// CommandMetrics records traffic through the command interpreter endpoint.
type CommandMetrics struct {
	requestsCounter   metric.Int64Counter
	actionsCounter    metric.Int64Counter
	droppedCounter    metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

// NewCommandMetrics creates the command instruments
func NewCommandMetrics() (*CommandMetrics, error) {
	requestsCounter, err := meter.Int64Counter(
		"ar_viewer.commands.requests",
		metric.WithDescription("Total number of command interpretation requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	actionsCounter, err := meter.Int64Counter(
		"ar_viewer.commands.actions",
		metric.WithDescription("Total number of valid actions returned to clients"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	droppedCounter, err := meter.Int64Counter(
		"ar_viewer.commands.actions_dropped",
		metric.WithDescription("Total number of malformed actions dropped at the boundary"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram(
		"ar_viewer.commands.duration",
		metric.WithDescription("Duration of command interpretation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &CommandMetrics{
		requestsCounter:   requestsCounter,
		actionsCounter:    actionsCounter,
		droppedCounter:    droppedCounter,
		durationHistogram: durationHistogram,
	}, nil
}

// RecordRequest records one finished request. status is the HTTP status returned.
func (cm *CommandMetrics) RecordRequest(ctx context.Context, status int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Int("http.status_code", status))
	cm.requestsCounter.Add(ctx, 1, attrs)
	cm.durationHistogram.Record(ctx, duration.Seconds(), attrs)
}

// RecordActions counts returned actions per kind.
func (cm *CommandMetrics) RecordActions(ctx context.Context, kinds []string) {
	for _, kind := range kinds {
		cm.actionsCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("action.type", kind)),
		)
	}
}

// RecordDropped counts entries removed by boundary validation.
func (cm *CommandMetrics) RecordDropped(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	cm.droppedCounter.Add(ctx, int64(n))
}

// SessionMetrics records viewer session lifecycle.
type SessionMetrics struct {
	sessionsCreatedCounter metric.Int64Counter
	sessionsActiveGauge    metric.Int64UpDownCounter
	sessionDuration        metric.Float64Histogram
	chatAppliedCounter     metric.Int64Counter
	resetsCounter          metric.Int64Counter
}

// NewSessionMetrics creates the session instruments
func NewSessionMetrics() (*SessionMetrics, error) {
	sessionsCreatedCounter, err := meter.Int64Counter(
		"ar_viewer.sessions.created",
		metric.WithDescription("Total number of viewer sessions opened"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	sessionsActiveGauge, err := meter.Int64UpDownCounter(
		"ar_viewer.sessions.active",
		metric.WithDescription("Number of currently open viewer sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	sessionDuration, err := meter.Float64Histogram(
		"ar_viewer.session.duration",
		metric.WithDescription("Lifetime of viewer sessions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	chatAppliedCounter, err := meter.Int64Counter(
		"ar_viewer.sessions.chat_applied",
		metric.WithDescription("Total number of chat action batches applied to a session"),
		metric.WithUnit("{batch}"),
	)
	if err != nil {
		return nil, err
	}

	resetsCounter, err := meter.Int64Counter(
		"ar_viewer.sessions.resets",
		metric.WithDescription("Total number of scene resets"),
		metric.WithUnit("{reset}"),
	)
	if err != nil {
		return nil, err
	}

	return &SessionMetrics{
		sessionsCreatedCounter: sessionsCreatedCounter,
		sessionsActiveGauge:    sessionsActiveGauge,
		sessionDuration:        sessionDuration,
		chatAppliedCounter:     chatAppliedCounter,
		resetsCounter:          resetsCounter,
	}, nil
}

// SessionOpened records a new session for modelID ("" when none was chosen).
func (sm *SessionMetrics) SessionOpened(ctx context.Context, modelID string) {
	sm.sessionsCreatedCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("model.id", modelID)),
	)
	sm.sessionsActiveGauge.Add(ctx, 1)
}

// SessionClosed records the end of a session.
func (sm *SessionMetrics) SessionClosed(ctx context.Context, lifetime time.Duration) {
	sm.sessionsActiveGauge.Add(ctx, -1)
	sm.sessionDuration.Record(ctx, lifetime.Seconds())
}

// ChatApplied records one applied chat batch of n actions.
func (sm *SessionMetrics) ChatApplied(ctx context.Context, n int) {
	sm.chatAppliedCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.Int("actions", n)),
	)
}

// Reset records a scene reset.
func (sm *SessionMetrics) Reset(ctx context.Context) {
	sm.resetsCounter.Add(ctx, 1)
}
