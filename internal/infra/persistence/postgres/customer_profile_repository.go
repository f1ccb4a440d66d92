package postgres

import (
	"context"

	"lens/internal/domain/entity"
	"lens/internal/domain/repository"
	"lens/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// customerProfileRepository implements repository.CustomerProfileRepository using GORM.
type customerProfileRepository struct {
	db *gorm.DB
}

// NewCustomerProfileRepository is the constructor for customerProfileRepository.
func NewCustomerProfileRepository(db *gorm.DB) repository.CustomerProfileRepository {
	return &customerProfileRepository{db: db}
}

// FindByUserID retrieves the single profile for a user_id.
func (repo *customerProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.CustomerProfile, error) {
	var profileM model.CustomerProfileModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, storeError(err, "failed to find customer profile")
	}

	return toCustomerProfileDomain(&profileM), nil
}

// Create persists a new profile. Exactly one profile may exist per user_id;
// the primary key rejects a second one.
func (repo *customerProfileRepository) Create(ctx context.Context, profile *entity.CustomerProfile) error {
	profileM := fromCustomerProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}
		if isNotNullConstraintViolation(err) {
			return repository.ErrInvalidData
		}

		return storeError(err, "failed to create customer profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// Update replaces an existing profile's sub-records.
func (repo *customerProfileRepository) Update(ctx context.Context, profile *entity.CustomerProfile) error {
	profileM := fromCustomerProfileDomain(profile)

	// Updates with a struct and an explicit field list so the json
	// serializer applies to the nested sub-records.
	result := repo.db.WithContext(ctx).
		Model(&model.CustomerProfileModel{UserID: profile.UserID}).
		Select("Demographic", "Behavior", "Engagement", "Lifecycle", "Preferences").
		Updates(profileM)

	if result.Error != nil {
		return storeError(result.Error, "failed to update customer profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

func toCustomerProfileDomain(data *model.CustomerProfileModel) *entity.CustomerProfile {
	if data == nil {
		return nil
	}

	return &entity.CustomerProfile{
		UserID:      data.UserID,
		Demographic: data.Demographic,
		Behavior:    data.Behavior,
		Engagement:  data.Engagement,
		Lifecycle:   data.Lifecycle,
		Preferences: data.Preferences,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromCustomerProfileDomain(data *entity.CustomerProfile) *model.CustomerProfileModel {
	if data == nil {
		return nil
	}

	return &model.CustomerProfileModel{
		UserID:      data.UserID,
		Demographic: data.Demographic,
		Behavior:    data.Behavior,
		Engagement:  data.Engagement,
		Lifecycle:   data.Lifecycle,
		Preferences: data.Preferences,
	}
}
