package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/daii-team/school-scheduler/internal/apperror"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock)

	tests := []struct {
		name           string
		requestBody    any
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantErro       string
		wantToken      string
	}{
		{
			name:           "valid login",
			requestBody:    Request{Email: "a@x.com", Password: "secret1"},
			mockToken:      "tok",
			wantStatusCode: http.StatusOK,
			wantToken:      "tok",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantErro:       "Email e senha são obrigatórios",
		},
		{
			name:           "missing password",
			requestBody:    Request{Email: "a@x.com"},
			wantStatusCode: http.StatusBadRequest,
			wantErro:       "Email e senha são obrigatórios",
		},
		{
			name:           "unknown email",
			requestBody:    Request{Email: "nobody@x.com", Password: "secret1"},
			mockErr:        apperror.New(apperror.NotFound, "Usuário não encontrado"),
			wantStatusCode: http.StatusNotFound,
			wantErro:       "Usuário não encontrado",
		},
		{
			name:           "wrong password",
			requestBody:    Request{Email: "a@x.com", Password: "secret2"},
			mockErr:        apperror.New(apperror.Auth, "Senha incorreta"),
			wantStatusCode: http.StatusUnauthorized,
			wantErro:       "Senha incorreta",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			if tt.mockToken != "" || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				authMock.On("Login", mock.Anything, req.Email, req.Password).
					Return(tt.mockToken, tt.mockErr).Once()
			}

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			if tt.wantErro != "" {
				assert.Equal(t, tt.wantErro, got["erro"])
			} else {
				assert.Equal(t, "Login bem-sucedido", got["message"])
				assert.Equal(t, tt.wantToken, got["token"])
			}

			authMock.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_PasswordFieldName(t *testing.T) {
	authMock := new(AuthServiceMock)
	handler := New(newNoopLogger(), authMock)

	authMock.On("Login", mock.Anything, "a@x.com", "secret1").Return("tok", nil).Once()

	// The password travels in the legacy "pwd" field.
	body := []byte(`{"email":"a@x.com","pwd":"secret1"}`)
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	authMock.AssertExpectations(t)
}
