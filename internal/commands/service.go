package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/metrics"
	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/transform"
)

// Service turns free-text chat messages into validated transform actions.
type Service struct {
	completer Completer
	metrics   *metrics.CommandMetrics
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics records request outcomes on m.
func WithMetrics(m *metrics.CommandMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a command service. A nil completer means no API key is
// configured and every non-empty message fails with a 500.
func NewService(completer Completer, opts ...Option) *Service {
	s := &Service{
		completer: completer,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// modelOutput is the loosely typed shape of the model answer. Actions is
// kept raw so malformed entries can be dropped one by one.
type modelOutput struct {
	Reply   string          `json:"reply"`
	Actions json.RawMessage `json:"actions"`
}

// Interpret maps message to a reply and actions. Failures are returned as
// *models.CommandError carrying the HTTP status and the reply to show.
func (s *Service) Interpret(ctx context.Context, message string) (*models.CommandResponse, error) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordRequest(ctx, status, time.Since(start))
		}
	}()

	if message == "" {
		status = http.StatusBadRequest
		return nil, &models.CommandError{Status: status, Reply: models.ReplyMissingMessage}
	}

	if s.completer == nil {
		status = http.StatusInternalServerError
		return nil, &models.CommandError{Status: status, Reply: models.ReplyMissingAPIKey}
	}

	text, err := s.completer.Complete(ctx, CompletionRequest{
		Instructions: Instructions,
		Message:      message,
		SchemaName:   SchemaName,
		Schema:       Schema,
	})
	if err != nil {
		status = http.StatusInternalServerError
		s.logger.Error("command model request failed", zap.Error(err))
		return nil, &models.CommandError{Status: status, Reply: models.ReplyServiceFailed, Err: err}
	}

	resp, dropped := parseOutput(text)
	if s.metrics != nil {
		s.metrics.RecordDropped(ctx, dropped)
		kinds := make([]string, len(resp.Actions))
		for i, a := range resp.Actions {
			kinds[i] = string(a.Kind())
		}
		s.metrics.RecordActions(ctx, kinds)
	}
	if dropped > 0 {
		s.logger.Debug("dropped invalid actions", zap.Int("dropped", dropped))
	}
	return resp, nil
}

// parseOutput decodes model text. Unparseable text yields the default reply
// with no actions. It also reports how many action entries were dropped.
func parseOutput(text string) (*models.CommandResponse, int) {
	resp := &models.CommandResponse{Reply: models.ReplyDefault, Actions: transform.Actions{}}

	var out modelOutput
	if text == "" || json.Unmarshal([]byte(text), &out) != nil {
		return resp, 0
	}
	if out.Reply != "" {
		resp.Reply = out.Reply
	}

	var raw []json.RawMessage
	if json.Unmarshal(out.Actions, &raw) != nil {
		return resp, 0
	}
	resp.Actions = transform.NormalizeRaw(raw)
	return resp, len(raw) - len(resp.Actions)
}
