package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestResponseOk(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hunches", nil)

	NewResponse().SetData(map[string]any{"id": 37}).Ok(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	body := decode(t, rec)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, map[string]any{"id": float64(37)}, body["data"])
	require.NotContains(t, body, "error")
}

func TestResponseDefaultError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/hunches/404", nil)

	NewResponse().SetData("ignored").NotFound(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decode(t, rec)
	require.Equal(t, "error", body["status"])
	require.NotContains(t, body, "data")
	require.Equal(t, map[string]any{"code": "not_found", "message": "Not found"}, body["error"])
}

func TestResponseCustomErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hunches", nil)

	NewResponse().
		SetError("invalid", "Hunch is invalid", map[string][]string{"title": {"can't be blank"}}).
		UnprocessableEntity(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode(t, rec)
	require.Equal(t, map[string]any{
		"code":    "invalid",
		"message": "Hunch is invalid",
		"details": map[string]any{"title": []any{"can't be blank"}},
	}, body["error"])
}

func TestResponseCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hunches", nil)

	NewResponse().SetData(map[string]any{"id": 1}).Created(rec, req, "/hunches/1")

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "/hunches/1", rec.Header().Get("Location"))
}
