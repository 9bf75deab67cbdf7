package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL         = "https://api.openai.com"
	DefaultModel           = "gpt-4o-mini"
	DefaultMaxOutputTokens = 600
)

// Completer returns the raw text output of a language model for a system
// prompt and a user message, constrained by a JSON schema.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is the model-agnostic input of Complete.
type CompletionRequest struct {
	Instructions string
	Message      string
	SchemaName   string
	Schema       json.RawMessage
}

// ResponsesClient handles communication with the OpenAI Responses API
type ResponsesClient struct {
	baseURL         string
	apiKey          string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
	tracer          trace.Tracer
	breaker         *gobreaker.CircuitBreaker
	logger          *zap.Logger
}

// APIError is a non-2xx answer of the Responses API.
type APIError struct {
	StatusCode int
	Type       string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("responses api returned status %d: %s", e.StatusCode, e.Message)
}

type inputText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type inputMessage struct {
	Role    string      `json:"role"`
	Content []inputText `json:"content"`
}

type textFormat struct {
	Type   string          `json:"type"`
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict bool            `json:"strict"`
}

type responsesRequest struct {
	Model string         `json:"model"`
	Input []inputMessage `json:"input"`
	Text  struct {
		Format textFormat `json:"format"`
	} `json:"text"`
	MaxOutputTokens int `json:"max_output_tokens"`
}

type responsesResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	OutputText string `json:"output_text,omitempty"`
	Output     []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewResponsesClient creates a client. Empty baseURL and model fall back to
// the public endpoint and DefaultModel.
func NewResponsesClient(baseURL, apiKey, model string, logger *zap.Logger) *ResponsesClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := gobreaker.Settings{
		Name:        "openai-responses",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &ResponsesClient{
		baseURL:         strings.TrimRight(baseURL, "/"),
		apiKey:          apiKey,
		model:           model,
		maxOutputTokens: DefaultMaxOutputTokens,
		httpClient:      &http.Client{},
		tracer:          otel.Tracer("openai-responses-client"),
		breaker:         gobreaker.NewCircuitBreaker(settings),
		logger:          logger,
	}
}

// SetBaseURL sets the base URL for testing purposes
func (c *ResponsesClient) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Complete sends one structured-output request and returns the model text.
func (c *ResponsesClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	ctx, span := c.tracer.Start(ctx, "openai_responses.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.max_output_tokens", c.maxOutputTokens),
	)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.completeInternal(ctx, req)
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to call responses api: %w", err)
	}

	text := result.(string)
	span.SetAttributes(attribute.Int("llm.output_length", len(text)))
	return text, nil
}

func (c *ResponsesClient) completeInternal(ctx context.Context, req CompletionRequest) (string, error) {
	body := responsesRequest{
		Model: c.model,
		Input: []inputMessage{
			{Role: "system", Content: []inputText{{Type: "input_text", Text: req.Instructions}}},
			{Role: "user", Content: []inputText{{Type: "input_text", Text: req.Message}}},
		},
		MaxOutputTokens: c.maxOutputTokens,
	}
	body.Text.Format = textFormat{
		Type:   "json_schema",
		Name:   req.SchemaName,
		Schema: req.Schema,
		Strict: false,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/responses", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			apiErr.Message = fmt.Sprintf("failed to read body: %v", err)
			return "", apiErr
		}
		var envelope errorEnvelope
		if json.Unmarshal(bodyBytes, &envelope) == nil && envelope.Error.Message != "" {
			apiErr.Message = envelope.Error.Message
			apiErr.Type = envelope.Error.Type
			apiErr.Code = envelope.Error.Code
		} else {
			apiErr.Message = string(bodyBytes)
		}
		return "", apiErr
	}

	var out responsesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return out.text(), nil
}

// text joins every output_text part, preferring the aggregated field when
// the server provides it.
func (r *responsesResponse) text() string {
	if r.OutputText != "" {
		return r.OutputText
	}
	var sb strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type == "output_text" {
				sb.WriteString(part.Text)
			}
		}
	}
	return sb.String()
}
