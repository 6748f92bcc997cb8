package middlewarectx

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental/internal/lib/jwt"
)

func TestJWTMiddleware(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	var gotEmail string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := EmailFromContext(r.Context())
		require.True(t, ok)
		gotEmail = email
		w.WriteHeader(http.StatusOK)
	})

	handler := JWTMiddleware(maker, log)(next)

	t.Run("valid token passes email to context", func(t *testing.T) {
		token, err := maker.GenerateToken("ivan@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cars", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ivan@example.com", gotEmail)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cars", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cars", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := jwt.NewJWTMaker("test-secret", -time.Minute)
		token, err := expired.GenerateToken("ivan@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/cars", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
