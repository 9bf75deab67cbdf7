package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/transform"
)

func TestCommandClient_Interpret(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantStatus  int
		wantReply   string
		wantActions transform.Actions
	}{
		{
			name:        "success drops malformed actions",
			status:      http.StatusOK,
			body:        `{"reply":"Feito.","actions":[{"type":"scale","factor":2},{"type":"rotate","axis":"q","degrees":1}]}`,
			wantReply:   "Feito.",
			wantActions: transform.Actions{transform.Scale{Factor: 2}},
		},
		{
			name:       "bad request keeps the reply",
			status:     http.StatusBadRequest,
			body:       `{"reply":"Please provide a message to interpret.","actions":[]}`,
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
			wantReply:  "Please provide a message to interpret.",
		},
		{
			name:       "server error",
			status:     http.StatusInternalServerError,
			body:       `{"reply":"Command service failed. Please try again.","actions":[]}`,
			wantErr:    true,
			wantStatus: http.StatusInternalServerError,
			wantReply:  "Command service failed. Please try again.",
		},
		{
			name:       "gateway error without a json body",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantErr:    true,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/actions", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req models.CommandRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "double its size", req.Message)

				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewCommandClient("http://unused")
			client.SetBaseURL(server.URL + "/")

			resp, err := client.Interpret(context.Background(), "double its size")
			if tt.wantErr {
				var cmdErr *models.CommandError
				require.ErrorAs(t, err, &cmdErr)
				assert.Equal(t, tt.wantStatus, cmdErr.Status)
				assert.Equal(t, tt.wantReply, cmdErr.Reply)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantReply, resp.Reply)
			assert.Equal(t, tt.wantActions, resp.Actions)
		})
	}
}

func TestCommandClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewCommandClient(url)
	_, err := client.Interpret(context.Background(), "hi")
	require.Error(t, err)

	var cmdErr *models.CommandError
	assert.False(t, errors.As(err, &cmdErr))
	assert.Equal(t, GenericErrText, errorText(err))
}
