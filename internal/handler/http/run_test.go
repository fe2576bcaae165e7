package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/photark/albumsync/internal/logger"
	"github.com/photark/albumsync/internal/service"
	"github.com/photark/albumsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock
// ─────────────────────────────────────────────

// mockCoordinator implements service.RunCoordinator for testing.
type mockCoordinator struct {
	triggerErr error
	triggered  int
}

func (m *mockCoordinator) Run(_ context.Context) (models.RunState, error) {
	return models.RunState{}, nil
}

func (m *mockCoordinator) TriggerRun(_ context.Context) error {
	m.triggered++
	return m.triggerErr
}

func newHandlerWithCoordinator(t *testing.T, coordinator service.RunCoordinator) *Handler {
	t.Helper()
	return NewHandler(
		&service.Services{Coordinator: coordinator},
		logger.Nop(),
	)
}

// ─────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────

func TestTriggerRun_Accepted(t *testing.T) {
	coordinator := &mockCoordinator{}
	h := newHandlerWithCoordinator(t, coordinator)

	req := httptest.NewRequest(http.MethodPost, "/api/run", nil)
	rec := httptest.NewRecorder()

	h.triggerRun(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, coordinator.triggered)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "started", got["status"])
}

func TestTriggerRun_AlreadyRunning(t *testing.T) {
	h := newHandlerWithCoordinator(t, &mockCoordinator{triggerErr: service.ErrAlreadyRunning})

	req := httptest.NewRequest(http.MethodPost, "/api/run", nil)
	rec := httptest.NewRecorder()

	h.triggerRun(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got["error"], "already active")
}

func TestTriggerRun_UnexpectedError(t *testing.T) {
	h := newHandlerWithCoordinator(t, &mockCoordinator{triggerErr: errors.New("lock file unwritable")})

	req := httptest.NewRequest(http.MethodPost, "/api/run", nil)
	rec := httptest.NewRecorder()

	h.triggerRun(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
}

func TestTriggerRun_ViaRouter_WrongMethod(t *testing.T) {
	h := newHandlerWithCoordinator(t, &mockCoordinator{})
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/run", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
