package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))
	w := httptest.NewRecorder()

	JSONSuccess(r, w, map[string]string{"hello": "world"}, map[string]interface{}{"total": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]string      `json:"data"`
		Meta    map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "world", resp.Data["hello"])
	assert.Equal(t, "req-1", resp.Meta["request_id"])
	assert.Equal(t, float64(1), resp.Meta["total"])
}

func TestJSONSuccessCreated(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()

	JSONSuccessCreated(r, w, map[string]string{"isbn": "9780143127741"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestJSONError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()

	JSONError(r, w, http.StatusConflict, "DUPLICATE_ISBN", "book already exists", []ErrorDetail{
		{Field: "isbn", Message: "already registered"},
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DUPLICATE_ISBN", resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "isbn", resp.Error.Details[0].Field)
}
