package preview

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/car-rental/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

// MockService реализует интерфейс preview.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Preview(ctx context.Context, email, bookingID string, lateHours int, damaged bool) (*models.Bill, error) {
	args := m.Called(ctx, email, bookingID, lateHours, damaged)
	if res := args.Get(0); res != nil {
		return res.(*models.Bill), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPreviewHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		bookingID      string
		body           string
		withEmail      bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "расчет с просрочкой и повреждением",
			bookingID: "b1",
			body:      `{"late_hours": 2, "damaged": true}`,
			withEmail: true,
			setupMock: func(m *MockService) {
				bill := &models.Bill{Base: 6000, LatePenalty: 100, DamageCharge: 1500, Total: 7600}
				m.On("Preview", mock.Anything, "olivia@example.com", "b1", 2, true).Return(bill, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":7600`,
		},
		{
			name:           "нет email в контексте",
			bookingID:      "b1",
			body:           `{"late_hours": 0, "damaged": false}`,
			withEmail:      false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `not authenticated`,
		},
		{
			name:      "неизвестное бронирование",
			bookingID: "ghost",
			body:      `{"late_hours": 0, "damaged": false}`,
			withEmail: true,
			setupMock: func(m *MockService) {
				m.On("Preview", mock.Anything, "olivia@example.com", "ghost", 0, false).
					Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/bookings/"+tt.bookingID+"/preview", bytes.NewBufferString(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.bookingID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			if tt.withEmail {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserEmail, "olivia@example.com"))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
