package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPErrorAdapter_StatusCodeFor(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	require.Equal(t, http.StatusOK, adapter.StatusCodeFor(nil))
	require.Equal(t, http.StatusBadRequest, adapter.StatusCodeFor(ConfigError(errors.New("x"), "x").Build()))
	require.Equal(t, http.StatusNotFound, adapter.StatusCodeFor(NewError(CategoryNotFound, "x").Build()))
	require.Equal(t, http.StatusUnprocessableEntity, adapter.StatusCodeFor(NewError(CategoryComponent, "x").Build()))
	require.Equal(t, http.StatusUnprocessableEntity, adapter.StatusCodeFor(NewError(CategoryMarkdown, "x").Build()))
	require.Equal(t, http.StatusServiceUnavailable, adapter.StatusCodeFor(RuntimeError(errors.New("x"), "x").Build()))
	require.Equal(t, http.StatusInternalServerError, adapter.StatusCodeFor(FileSystemError(errors.New("x"), "x").Build()))
	require.Equal(t, http.StatusInternalServerError, adapter.StatusCodeFor(errors.New("x")))
}

func TestHTTPErrorAdapter_WriteErrorResponse(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	err := WrapError(errors.New("boom"), CategoryLayout, "render failed").WithPath("a.md").Build()
	adapter.WriteErrorResponse(rec, req, err)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload HTTPErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "render failed", payload.Error)
	require.Equal(t, "layout", payload.Code)
	require.Equal(t, "a.md", payload.Details["path"])
	require.Equal(t, "boom", payload.Details["cause"])
}
