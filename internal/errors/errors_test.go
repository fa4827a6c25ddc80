package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkodi/alias-buddy/internal/model"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationFailed(model.FieldErrors{model.FieldProject: "Project name is required"}).WriteJSON(rec)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Error struct {
			Code   string            `json:"code"`
			Fields map[string]string `json:"fields"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, "Project name is required", body.Error.Fields["project"])
}

func TestWriteJSON_OmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Internal("").WriteJSON(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"An internal server error occurred"}}`, rec.Body.String())
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{InvalidJSON("x"), http.StatusBadRequest},
		{MissingField("email"), http.StatusBadRequest},
		{UnsupportedFormat("xml"), http.StatusBadRequest},
		{NotFound("alias"), http.StatusNotFound},
		{UnknownPlatform("fax"), http.StatusNotFound},
		{ValidationFailed(nil), http.StatusUnprocessableEntity},
		{RateLimitExceeded(), http.StatusTooManyRequests},
		{StorageError(), http.StatusInternalServerError},
		{Unavailable("db"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}
