package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lens/internal/delivery/http/validator"
	"lens/internal/domain/entity"
	domainerrors "lens/internal/domain/errors"
	"lens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase lets each test control the usecase outcome directly.
type stubAuthUsecase struct {
	registerFn func(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error)
	loginFn    func(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error)
}

func (s *stubAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.loginFn(ctx, input)
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler := &AuthHandler{
		authUC: &stubAuthUsecase{
			registerFn: func(_ context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
				return &usecase.RegisterOutput{User: &entity.User{
					UserID:       "user_abc",
					Email:        input.Email,
					PasswordHash: "$2a$12$secret.digest",
					FirstName:    input.FirstName,
					LastName:     input.LastName,
					Role:         entity.RoleAnalyst,
				}}, nil
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newAuthTestContext(t, `{
		"email": "ada@example.com",
		"password": "Password123!",
		"first_name": "Ada",
		"last_name": "Lovelace"
	}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "user_abc")
	assert.Contains(t, body, `"success":true`)

	// The stored secret must never appear in a response.
	assert.NotContains(t, body, "secret.digest")
	assert.NotContains(t, body, "password_hash")
}

func TestAuthHandler_Register_RejectsBadPayload(t *testing.T) {
	handler := &AuthHandler{
		authUC: &stubAuthUsecase{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	// Missing email and a too-short password.
	c, rec := newAuthTestContext(t, `{"password": "short"}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	handler := &AuthHandler{
		authUC: &stubAuthUsecase{
			registerFn: func(context.Context, usecase.RegisterInput) (*usecase.RegisterOutput, error) {
				return nil, domainerrors.ErrEmailTaken
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newAuthTestContext(t, `{
		"email": "ada@example.com",
		"password": "Password123!",
		"first_name": "Ada",
		"last_name": "Lovelace"
	}`)

	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := &AuthHandler{
		authUC: &stubAuthUsecase{
			loginFn: func(_ context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
				return &usecase.LoginOutput{
					Token: "signed.jwt.token",
					User: &entity.User{
						UserID: "user_abc",
						Email:  input.Email,
						Role:   entity.RoleManager,
					},
				}, nil
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newAuthTestContext(t, `{"email": "ada@example.com", "password": "Password123!"}`)

	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed.jwt.token")
	assert.Contains(t, rec.Body.String(), `"role":"manager"`)
}

func TestAuthHandler_Login_DistinguishesUnknownEmailFromBadPassword(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"unknown email", domainerrors.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"bad password", domainerrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := &AuthHandler{
				authUC: &stubAuthUsecase{
					loginFn: func(context.Context, usecase.LoginInput) (*usecase.LoginOutput, error) {
						return nil, tc.err
					},
				},
				logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			}

			c, rec := newAuthTestContext(t, `{"email": "a@b.com", "password": "whatever1"}`)

			require.NoError(t, handler.Login(c))
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}
