package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		respond    func(c *gin.Context)
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"bad request", func(c *gin.Context) { RespondWithBadRequest(c, "No file provided", nil) },
			http.StatusBadRequest, "bad_request", "No file provided"},
		{"not found", func(c *gin.Context) { RespondWithNotFound(c, "Document not found") },
			http.StatusNotFound, "not_found", "Document not found"},
		{"too large", func(c *gin.Context) { RespondWithTooLarge(c, 16<<20) },
			http.StatusRequestEntityTooLarge, "request_too_large", "Request body exceeds maximum size"},
		{"unprocessable", func(c *gin.Context) { RespondWithUnprocessable(c, "Could not read", nil) },
			http.StatusUnprocessableEntity, "unprocessable_document", "Could not read"},
		{"internal", func(c *gin.Context) { RespondWithInternalError(c, "boom", nil) },
			http.StatusInternalServerError, "internal_error", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.respond(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.ErrorCode)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}
