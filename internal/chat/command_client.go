package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tektai/ar-viewer/internal/models"
)

// CommandClient calls a remote POST /api/actions endpoint.
// It has no timeout and never retries: the caller's context bounds the call.
type CommandClient struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewCommandClient creates a client for the command service at baseURL.
func NewCommandClient(baseURL string) *CommandClient {
	return &CommandClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tracer:     otel.Tracer("command-client"),
	}
}

// SetBaseURL sets the base URL for testing purposes
func (c *CommandClient) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Interpret posts message and decodes the reply. Non-2xx responses become
// *models.CommandError carrying the server's reply text.
func (c *CommandClient) Interpret(ctx context.Context, message string) (*models.CommandResponse, error) {
	ctx, span := c.tracer.Start(ctx, "command_client.interpret")
	defer span.End()

	body, err := json.Marshal(models.CommandRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/actions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Inject trace context
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var payload models.CommandResponse
	decodeErr := json.Unmarshal(data, &payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cmdErr := &models.CommandError{Status: resp.StatusCode}
		if decodeErr == nil {
			cmdErr.Reply = payload.Reply
		}
		span.RecordError(cmdErr)
		return nil, cmdErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	span.SetAttributes(attribute.Int("actions.count", len(payload.Actions)))
	return &payload, nil
}
