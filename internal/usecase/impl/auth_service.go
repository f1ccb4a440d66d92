// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "lens/internal/delivery/context"
	"lens/internal/domain/entity"
	domainerrors "lens/internal/domain/errors"
	"lens/internal/domain/repository"
	"lens/internal/domain/service"
	"lens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyPasswordHash is a syntactically valid bcrypt digest compared against
// when the email is unknown, so that lookups on existing and missing accounts
// take the same time.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a staff account. The email pre-check gives a friendly
// error for the common case; the store's unique index remains the final
// authority when two registrations race past the pre-check.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := normalizeEmail(input.Email)

	role := entity.Role(input.Role)
	if role == "" {
		role = entity.RoleAnalyst
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role: " + input.Role)
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email), slog.Any("role", role))

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, wrapStoreError(err, "failed to check email availability")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &entity.User{
		UserID:           "user_" + uuid.New().String(),
		Email:            email,
		PasswordHash:     hashed,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Role:             role,
		RegistrationDate: now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost the race against a concurrent registration for the
			// same email.
			return nil, domainerrors.ErrEmailTaken
		}
		srv.log(ctx).Error("Failed to persist new account", slog.String("email", email), slog.Any("error", err))

		return nil, wrapStoreError(err, "failed to create user")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("userID", user.UserID))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are reported as distinct errors; the hash comparison runs
// in both cases so the two paths are not distinguishable by timing.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.hasher.Check(input.Password, dummyPasswordHash)

			return nil, domainerrors.ErrUserNotFound
		}
		srv.log(ctx).Error("Failed to look up account", slog.Any("error", err))

		return nil, wrapStoreError(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected: bad password", slog.String("userID", user.UserID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := srv.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		// The login itself succeeded; a failed telemetry write must not
		// lock the user out.
		srv.log(ctx).Warn("Failed to record last login", slog.String("userID", user.UserID), slog.Any("error", err))
	} else {
		user.LastLogin = &now
	}

	token, err := srv.tokenService.Issue(service.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role.String(),
	}, 0)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("userID", user.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Info("Login succeeded", slog.String("userID", user.UserID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// wrapStoreError maps a repository failure onto the application taxonomy: a
// store outage surfaces as 503, anything else keeps its wrapped context for
// the generic 500 path.
func wrapStoreError(err error, message string) error {
	if errors.Is(err, repository.ErrStoreUnavailable) {
		return domainerrors.ErrStoreUnavailable
	}

	return errors.Wrap(err, message)
}

// normalizeEmail strips surrounding whitespace only. Email identity is
// case-sensitive: the address is stored and matched exactly as given, so
// "Ada@X.com" and "ada@x.com" are distinct accounts.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
