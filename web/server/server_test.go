package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracelog"
)

func TestHandleHealthz_ReportsOK(t *testing.T) {
	s := NewServer(":0", tracelog.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	s.handleHealthz(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleInspect_KnownBuiltinReportsShape(t *testing.T) {
	s := NewServer(":0", tracelog.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/inspect?scene=v-chain-120", nil)
	rec := httptest.NewRecorder()

	s.handleInspect(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["surfaces"])
	assert.EqualValues(t, 1, body["chains"])
}

func TestHandleInspect_UnknownSceneIsBadRequest(t *testing.T) {
	s := NewServer(":0", tracelog.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/inspect?scene=does-not-exist", nil)
	rec := httptest.NewRecorder()

	s.handleInspect(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrajectory_DirectShotReachesCursor(t *testing.T) {
	s := NewServer(":0", tracelog.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/trajectory", strings.NewReader(`{"scene":"direct-shot"}`))
	rec := httptest.NewRecorder()

	s.handleTrajectory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["reachedCursor"])
}

func TestHandleTrajectory_EmptyBodyDefaultsScene(t *testing.T) {
	s := NewServer(":0", tracelog.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/trajectory", nil)
	rec := httptest.NewRecorder()

	s.handleTrajectory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleVisibility_ReturnsNonEmptyPolygon(t *testing.T) {
	s := NewServer(":0", tracelog.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/api/visibility", strings.NewReader(`{"scene":"blocked-by-wall"}`))
	rec := httptest.NewRecorder()

	s.handleVisibility(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body)
}
