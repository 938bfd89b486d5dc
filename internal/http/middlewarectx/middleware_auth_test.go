package middlewarectx_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/http/middlewarectx"
	"github.com/daii-team/school-scheduler/internal/lib/jwt"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handlerCalled := false

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		assert.Equal(t, "uid-1", r.Context().Value(middlewarectx.UserID))
		assert.Equal(t, "a@x.com", r.Context().Value(middlewarectx.Email))
		assert.Equal(t, "user", r.Context().Value(middlewarectx.Level))
		w.WriteHeader(http.StatusOK)
	})

	handler := middlewarectx.JWTMiddleware(authMock, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *jwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantErro       string
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantErro:       "Token não fornecido",
		},
		{
			name:           "wrong scheme",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantErro:       "Token não fornecido",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer badtoken",
			mockErr:        apperror.New(apperror.Auth, "Token inválido ou expirado"),
			wantStatusCode: http.StatusUnauthorized,
			wantErro:       "Token inválido ou expirado",
		},
		{
			name:       "valid token",
			authHeader: "Bearer goodtoken",
			mockClaims: &jwt.CustomClaims{
				UserID: "uid-1",
				Email:  "a@x.com",
				Level:  "user",
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			authMock.ExpectedCalls = nil
			authMock.Calls = nil
			if tt.mockClaims != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", mock.Anything, strings.TrimPrefix(tt.authHeader, "Bearer ")).
					Return(tt.mockClaims, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/users/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)

			if tt.wantErro != "" {
				var got map[string]any
				err := json.NewDecoder(rec.Body).Decode(&got)
				assert.NoError(t, err)
				assert.Equal(t, tt.wantErro, got["erro"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
