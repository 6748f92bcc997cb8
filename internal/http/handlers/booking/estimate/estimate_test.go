package estimate

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "маленькая компания получает седан",
			body:           `{"days": 3, "people": 4}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_cost":6000`,
		},
		{
			name:           "большая компания получает SUV",
			body:           `{"days": 2, "people": 6}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"car_type":"SUV"`,
		},
		{
			name:           "нулевой срок поднимается до одного дня",
			body:           `{"days": 0, "people": 2}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_cost":2000`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"days"`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger)

			req := httptest.NewRequest(http.MethodPost, "/estimate", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
		})
	}
}
