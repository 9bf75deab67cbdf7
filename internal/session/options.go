package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/chat"
)

// Recorder receives session lifecycle measurements.
type Recorder interface {
	SessionOpened(ctx context.Context, modelID string)
	SessionClosed(ctx context.Context, lifetime time.Duration)
	ChatApplied(ctx context.Context, n int)
	Reset(ctx context.Context)
}

type nopRecorder struct{}

func (nopRecorder) SessionOpened(context.Context, string)        {}
func (nopRecorder) SessionClosed(context.Context, time.Duration) {}
func (nopRecorder) ChatApplied(context.Context, int)             {}
func (nopRecorder) Reset(context.Context)                        {}

type options struct {
	logger   *zap.Logger
	recorder Recorder
	chatOpts []chat.Option
	newID    func() string
	now      func() time.Time
}

// Option configures a Manager or a Controller.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithChatOptions passes options to every chat pipeline the manager creates.
func WithChatOptions(opts ...chat.Option) Option {
	return func(o *options) {
		o.chatOpts = append(o.chatOpts, opts...)
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
