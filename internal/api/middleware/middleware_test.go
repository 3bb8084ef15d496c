package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nitishagar/bharatdcim/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		panicV  interface{}
		message string
	}{
		{"string", "catalog missing", "catalog missing"},
		{"error", errors.New("boom"), "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			r := gin.New()
			r.Use(ErrorHandler(zerolog.New(&logs)))
			r.GET("/panic", func(c *gin.Context) { panic(tt.panicV) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
			if w.Code != http.StatusInternalServerError {
				t.Fatalf("status %d", w.Code)
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error.Code != "INTERNAL_ERROR" || resp.Error.Message != tt.message {
				t.Errorf("unexpected error body %+v", resp.Error)
			}
			if !strings.Contains(logs.String(), "recovered from panic") {
				t.Errorf("panic was not logged: %s", logs.String())
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var logs bytes.Buffer
	r := gin.New()
	r.Use(Logger(zerolog.New(&logs)))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/states/:state", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if logs.Len() != 0 {
		t.Errorf("health checks should not be logged: %s", logs.String())
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/states/KA", nil))
	var entry map[string]interface{}
	if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", logs.String(), err)
	}
	if entry["level"] != "warn" || entry["route"] != "/api/v1/states/:state" || entry["status"] != float64(418) {
		t.Errorf("unexpected log entry %v", entry)
	}
}
