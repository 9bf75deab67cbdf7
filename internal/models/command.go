package models

import (
	"fmt"

	"github.com/tektai/ar-viewer/internal/transform"
)

// Fixed replies of the command endpoint.
const (
	ReplyMissingMessage = "Please provide a message to interpret."
	ReplyMissingAPIKey  = "OpenAI API key is not configured on the server."
	ReplyServiceFailed  = "Command service failed. Please try again."
	ReplyDefault        = "Here is what I found."
)

// CommandRequest is the body of POST /api/actions
type CommandRequest struct {
	Message string `json:"message"`
}

// CommandResponse is the body returned by POST /api/actions for every status.
// Actions always holds only valid entries.
type CommandResponse struct {
	Reply   string            `json:"reply"`
	Actions transform.Actions `json:"actions"`
}

// CommandError is a non-200 outcome of command interpretation.
// Reply is the text sent back to the caller.
type CommandError struct {
	Status int
	Reply  string
	Err    error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command interpretation failed (%d): %s: %v", e.Status, e.Reply, e.Err)
	}
	return fmt.Sprintf("command interpretation failed (%d): %s", e.Status, e.Reply)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Response renders the error as the endpoint body.
func (e *CommandError) Response() CommandResponse {
	return CommandResponse{Reply: e.Reply, Actions: transform.Actions{}}
}
