// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"lens/internal/delivery/http/response"
	"lens/internal/domain/entity"
	domainerrors "lens/internal/domain/errors"
	"lens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthHandler holds dependencies for authentication handlers
type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for registering a staff account
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=admin analyst manager"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserView is the account representation returned to clients. The stored
// secret never appears here.
type UserView struct {
	UserID           string             `json:"user_id"`
	Email            string             `json:"email"`
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Role             string             `json:"role"`
	RegistrationDate time.Time          `json:"registration_date"`
	LastLogin        *time.Time         `json:"last_login,omitempty"`
	Preferences      entity.Preferences `json:"preferences"`
}

// LoginView bundles the bearer token with the account it belongs to
type LoginView struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

func newUserView(u *entity.User) UserView {
	return UserView{
		UserID:           u.UserID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             u.Role.String(),
		RegistrationDate: u.RegistrationDate,
		LastLogin:        u.LastLogin,
		Preferences:      u.Preferences,
	}
}

// Register handles staff account creation
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.Register(c.Request().Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newUserView(output.User), "Account created successfully")
}

// Login handles credential verification and token issuance
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, LoginView{
		Token: output.Token,
		User:  newUserView(output.User),
	}, "Login successful")
}

// Me returns the identity claims of the authenticated caller
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("userID").(string)
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)

	return response.Success(c, http.StatusOK, map[string]string{
		"user_id": userID,
		"email":   email,
		"role":    role,
	}, "Authenticated")
}

func (h *AuthHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
