package postgres

import (
	"context"
	"time"

	"lens/internal/domain/entity"
	"lens/internal/domain/repository"
	"lens/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByEmail retrieves a single user by their email address. The lookup is
// case-sensitive, matching how emails are stored.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error

	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		// Otherwise, return the original database error.
		return nil, storeError(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user record. The unique indexes on user_id and email
// are the final arbiter of duplicates: a colliding write surfaces as
// repository.ErrDuplicateKey rather than overwriting anything.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}
		if isNotNullConstraintViolation(err) {
			return repository.ErrInvalidData
		}

		return storeError(err, "failed to create user")
	}

	// Reflect the store-assigned timestamps back onto the entity.
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateLastLogin stamps the user's last successful login time.
func (repo *userRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("user_id = ?", userID).
		Update("last_login", at)

	if result.Error != nil {
		return storeError(result.Error, "failed to update last login")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		UserID:           data.UserID,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Role:             entity.Role(data.Role),
		RegistrationDate: data.RegistrationDate,
		LastLogin:        data.LastLogin,
		Preferences:      data.Preferences,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		UserID:           data.UserID,
		Email:            data.Email,
		PasswordHash:     data.PasswordHash,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Role:             data.Role.String(),
		RegistrationDate: data.RegistrationDate,
		LastLogin:        data.LastLogin,
		Preferences:      data.Preferences,
	}
}
