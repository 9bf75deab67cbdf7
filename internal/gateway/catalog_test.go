package gateway

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/models"
)

func TestModels_List(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/models", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[[]catalog.Model](t, w)
	require.Len(t, list, 6)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, catalog.FormatOBJ, list[0].Format)
}

func TestModels_Get(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/models/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Xícara de Café", decode[catalog.Model](t, w).Name)

	w = s.do(t, http.MethodGet, "/api/models/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrCodeModelNotFound, decode[models.ErrorResponse](t, w).Code)
}

func TestModels_Update(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       any
		wantStatus int
		wantCode   string
		wantName   string
	}{
		{
			name:       "rename",
			id:         "2",
			body:       map[string]any{"name": "Servidores", "scale": 0.5},
			wantStatus: http.StatusOK,
			wantName:   "Servidores",
		},
		{
			name:       "invalid format",
			id:         "2",
			body:       map[string]any{"type": "fbx"},
			wantStatus: http.StatusBadRequest,
			wantCode:   models.ErrCodeValidationFailed,
		},
		{
			name:       "malformed body",
			id:         "2",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   models.ErrCodeInvalidRequest,
		},
		{
			name:       "unknown model",
			id:         "99",
			body:       map[string]any{"name": "x"},
			wantStatus: http.StatusNotFound,
			wantCode:   models.ErrCodeModelNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, false)

			w := s.do(t, http.MethodPatch, "/api/models/"+tt.id, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[models.ErrorResponse](t, w).Code)
				return
			}
			m := decode[catalog.Model](t, w)
			assert.Equal(t, tt.wantName, m.Name)
			require.NotNil(t, m.Scale)
			assert.Equal(t, 0.5, *m.Scale)
		})
	}
}

func TestModels_Delete(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodDelete, "/api/models/4", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, "/api/models/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/models", nil)
	assert.Len(t, decode[[]catalog.Model](t, w), 5)
}
