package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorEnvelope(t *testing.T) {
	cases := []struct {
		name    string
		respond func(http.ResponseWriter)
		status  int
		message string
	}{
		{"bad request", RespondBadRequest, http.StatusBadRequest, "bad request"},
		{"not found", RespondNotFound, http.StatusNotFound, "resource not found"},
		{"unprocessable", RespondUnprocessable, http.StatusUnprocessableEntity, "unprocessable"},
		{"internal", RespondInternalError, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.respond(rec)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.status, body.Error)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestMessageFallsBackToStatusText(t *testing.T) {
	assert.Equal(t, "Service Unavailable", Message(http.StatusServiceUnavailable))
	assert.Equal(t, "Method Not Allowed", Message(http.StatusMethodNotAllowed))
}
