package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"lens/internal/domain/entity"
	domainerrors "lens/internal/domain/errors"
	"lens/internal/domain/repository"
	"lens/internal/domain/service"
	mockRepo "lens/internal/mocks/repository"
	mockSvc "lens/internal/mocks/service"
	"lens/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return authServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "Ada@Example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "Password123!").Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:     " Ada@Example.com ",
		Password:  "Password123!",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      "manager",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "Ada@Example.com", output.User.Email)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
	assert.Equal(t, entity.RoleManager, output.User.Role)
	assert.True(t, strings.HasPrefix(output.User.UserID, "user_"))
	assert.False(t, output.User.RegistrationDate.IsZero())
}

func TestAuthService_Register_DefaultsRole(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "Password123!").Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	output, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAnalyst, output.User.Role)
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "ada@example.com",
		Password: "Password123!",
		Role:     "superuser",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").
		Return(&entity.User{UserID: "user_existing"}, nil)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	})

	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_Register_LostRaceMapsToEmailTaken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	// The pre-check saw no account, but another registration committed the
	// same email before our write reached the store.
	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "Password123!").Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrDuplicateKey)

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	})

	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").
		Return(nil, errors.New("connection refused"))

	_, err := fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_StoreOutageSurfacesAsUnavailable(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").
		Return(nil, repository.ErrStoreUnavailable)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)

	_, err = fx.service.Register(ctx, usecase.RegisterInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, domainerrors.ErrStoreUnavailable)
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		UserID:       "user_1",
		Email:        "ada@example.com",
		PasswordHash: "stored_hash",
		Role:         entity.RoleAdmin,
	}

	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	fx.hasher.On("Check", "Password123!", "stored_hash").Return(true)
	fx.userRepo.On("UpdateLastLogin", ctx, "user_1", mock.AnythingOfType("time.Time")).
		Return(nil)
	fx.tokenService.On("Issue", service.Claims{
		UserID: "user_1",
		Email:  "ada@example.com",
		Role:   "admin",
	}, time.Duration(0)).Return("signed.jwt.token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    " ada@example.com ",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	require.NotNil(t, output.User.LastLogin)
	assert.WithinDuration(t, time.Now().UTC(), *output.User.LastLogin, time.Minute)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)
	// The dummy comparison still runs so the miss is not observable by
	// timing.
	fx.hasher.On("Check", "Password123!", dummyPasswordHash).Return(false)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "Password123!",
	})

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		UserID:       "user_1",
		Email:        "ada@example.com",
		PasswordHash: "stored_hash",
		Role:         entity.RoleAnalyst,
	}

	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	fx.hasher.On("Check", "wrong", "stored_hash").Return(false)

	_, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_LastLoginWriteFailureIsNotFatal(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	user := &entity.User{
		UserID:       "user_1",
		Email:        "ada@example.com",
		PasswordHash: "stored_hash",
		Role:         entity.RoleAnalyst,
	}

	fx.userRepo.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	fx.hasher.On("Check", "Password123!", "stored_hash").Return(true)
	fx.userRepo.On("UpdateLastLogin", ctx, "user_1", mock.AnythingOfType("time.Time")).
		Return(errors.New("write timeout"))
	fx.tokenService.On("Issue", mock.AnythingOfType("service.Claims"), time.Duration(0)).
		Return("signed.jwt.token", nil)

	output, err := fx.service.Login(ctx, usecase.LoginInput{
		Email:    "ada@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", output.Token)
	assert.Nil(t, output.User.LastLogin)
}
