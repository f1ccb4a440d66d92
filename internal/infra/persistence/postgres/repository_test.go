package postgres

import (
	"context"
	"testing"
	"time"

	"lens/internal/domain/entity"
	"lens/internal/domain/repository"
	"lens/internal/infra/persistence/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema. The
// repositories only use portable SQL, so the same code paths run against
// PostgreSQL in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.UserModel{},
		&model.CustomerProfileModel{},
		&model.ProductModel{},
		&model.TransactionModel{},
	))

	return db
}

func newTestUser(userID, email string) *entity.User {
	return &entity.User{
		UserID:           userID,
		Email:            email,
		PasswordHash:     "$2a$10$fake.hash.value",
		FirstName:        "Ada",
		LastName:         "Lovelace",
		Role:             entity.RoleAnalyst,
		RegistrationDate: time.Now().UTC(),
		Preferences: entity.Preferences{
			DashboardLayout: "grid",
			Theme:           entity.ThemeDark,
			NotificationSettings: map[string]any{
				"email_digest": true,
			},
		},
	}
}

func TestUserRepository_CreateAndFindByEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user := newTestUser("user_1", "ada@example.com")
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_1", found.UserID)
	assert.Equal(t, entity.RoleAnalyst, found.Role)
	assert.Equal(t, "grid", found.Preferences.DashboardLayout)
	assert.Equal(t, entity.ThemeDark, found.Preferences.Theme)
	assert.Nil(t, found.LastLogin)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmailFails(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("user_1", "ada@example.com")))

	// Same email, different user_id: the unique index must reject the write
	// rather than overwrite the first record.
	err := repo.Create(ctx, newTestUser("user_2", "ada@example.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	// Same user_id, different email.
	err = repo.Create(ctx, newTestUser("user_1", "other@example.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	// The original record is intact.
	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user_1", found.UserID)
}

func TestUserRepository_LostPreCheckRace(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	// Two registrations pass the email pre-check before either has written.
	// The store's unique index remains the authority: exactly one create
	// succeeds.
	_, err := repo.FindByEmail(ctx, "race@example.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "race@example.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	first := repo.Create(ctx, newTestUser("user_a", "race@example.com"))
	second := repo.Create(ctx, newTestUser("user_b", "race@example.com"))

	require.NoError(t, first)
	assert.ErrorIs(t, second, repository.ErrDuplicateKey)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("user_1", "ada@example.com")))

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, "user_1", at))

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.WithinDuration(t, at, *found.LastLogin, time.Second)

	assert.ErrorIs(t, repo.UpdateLastLogin(ctx, "user_missing", at), repository.ErrUserNotFound)
}

func TestCustomerProfileRepository_RoundTrip(t *testing.T) {
	repo := NewCustomerProfileRepository(newTestDB(t))
	ctx := context.Background()

	profile := &entity.CustomerProfile{
		UserID: "user_1",
		Demographic: entity.Demographic{
			Age:         34,
			Gender:      "female",
			IncomeLevel: "high",
			Location:    entity.Location{Country: "US", State: "CA", City: "Oakland"},
		},
		Behavior: entity.Behavior{
			TotalOrders:         12,
			TotalSpent:          1430.50,
			AverageOrderValue:   119.21,
			PreferredCategories: []string{"electronics", "books"},
		},
		Lifecycle: entity.Lifecycle{
			LifecycleStage:   "active",
			ChurnProbability: 0.12,
			LifetimeValue:    2200,
		},
	}

	require.NoError(t, repo.Create(ctx, profile))

	found, err := repo.FindByUserID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, 34, found.Demographic.Age)
	assert.Equal(t, []string{"electronics", "books"}, found.Behavior.PreferredCategories)
	assert.InDelta(t, 0.12, found.Lifecycle.ChurnProbability, 1e-9)

	// One profile per user_id.
	err = repo.Create(ctx, &entity.CustomerProfile{UserID: "user_1"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	// A profile can exist for a user_id with no identity record; and an
	// unknown user_id is simply not found.
	_, err = repo.FindByUserID(ctx, "user_ghost")
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestCustomerProfileRepository_Update(t *testing.T) {
	repo := NewCustomerProfileRepository(newTestDB(t))
	ctx := context.Background()

	profile := &entity.CustomerProfile{
		UserID:    "user_1",
		Lifecycle: entity.Lifecycle{LifecycleStage: "new"},
	}
	require.NoError(t, repo.Create(ctx, profile))

	profile.Lifecycle.LifecycleStage = "active"
	profile.Lifecycle.ChurnProbability = 0.4
	require.NoError(t, repo.Update(ctx, profile))

	found, err := repo.FindByUserID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "active", found.Lifecycle.LifecycleStage)
	assert.InDelta(t, 0.4, found.Lifecycle.ChurnProbability, 1e-9)

	err = repo.Update(ctx, &entity.CustomerProfile{UserID: "user_missing"})
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestProductRepository_CreateAndSearch(t *testing.T) {
	repo := NewProductRepository(newTestDB(t))
	ctx := context.Background()

	products := []*entity.Product{
		{ProductID: "prod_1", Name: "Trail Running Shoes", Description: "Lightweight shoes for rough terrain", Category: "footwear", IsActive: true},
		{ProductID: "prod_2", Name: "Espresso Machine", Description: "15-bar pump espresso maker", Category: "kitchen", IsActive: true},
		{ProductID: "prod_3", Name: "Road Bike", Description: "Carbon frame, comes with spare shoes cleats", Category: "cycling", IsActive: false},
	}
	for _, p := range products {
		require.NoError(t, repo.Create(ctx, p))
	}

	// Duplicate product_id is rejected.
	err := repo.Create(ctx, &entity.Product{ProductID: "prod_1", Name: "Copy"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	// Free-text search matches name or description, case-insensitively.
	found, err := repo.Search(ctx, "shoes", 10)
	require.NoError(t, err)
	ids := make([]string, 0, len(found))
	for _, p := range found {
		ids = append(ids, p.ProductID)
	}
	assert.ElementsMatch(t, []string{"prod_1", "prod_3"}, ids)

	found, err = repo.Search(ctx, "ESPRESSO", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "prod_2", found[0].ProductID)

	_, err = repo.FindByProductID(ctx, "prod_missing")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestTransactionRepository_ListByUserNewestFirst(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"txn_1", "txn_2", "txn_3"} {
		require.NoError(t, repo.Create(ctx, &entity.Transaction{
			TransactionID: id,
			UserID:        "user_1",
			ProductID:     "prod_1",
			ProductName:   "Espresso Machine",
			Category:      "kitchen",
			Quantity:      1,
			TotalAmount:   199.90,
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
			Location:      entity.Location{Country: "US", Zipcode: "94607"},
		}))
	}
	// A transaction for another user, and one referencing a user with no
	// profile. Both are legitimate.
	require.NoError(t, repo.Create(ctx, &entity.Transaction{
		TransactionID: "txn_other",
		UserID:        "user_2",
		Timestamp:     base,
	}))

	err := repo.Create(ctx, &entity.Transaction{TransactionID: "txn_1", UserID: "user_9"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	txns, err := repo.ListByUserID(ctx, "user_1", 0)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "txn_3", txns[0].TransactionID)
	assert.Equal(t, "txn_1", txns[2].TransactionID)
	assert.Equal(t, "94607", txns[0].Location.Zipcode)

	txns, err = repo.ListByUserID(ctx, "user_1", 2)
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	found, err := repo.FindByTransactionID(ctx, "txn_other")
	require.NoError(t, err)
	assert.Equal(t, "user_2", found.UserID)
}

// Denormalized snapshots: editing a product after the fact must not change
// what a stored transaction says was bought.
func TestTransactionSnapshotIndependentOfProduct(t *testing.T) {
	db := newTestDB(t)
	productRepo := NewProductRepository(db)
	txnRepo := NewTransactionRepository(db)
	ctx := context.Background()

	require.NoError(t, productRepo.Create(ctx, &entity.Product{
		ProductID: "prod_1",
		Name:      "Espresso Machine",
		Category:  "kitchen",
	}))
	require.NoError(t, txnRepo.Create(ctx, &entity.Transaction{
		TransactionID: "txn_1",
		UserID:        "user_1",
		ProductID:     "prod_1",
		ProductName:   "Espresso Machine",
		Category:      "kitchen",
		Timestamp:     time.Now().UTC(),
	}))

	// Rename the product directly; the snapshot must not follow.
	require.NoError(t, db.Model(&model.ProductModel{}).
		Where("product_id = ?", "prod_1").
		Update("name", "Espresso Machine v2").Error)

	txn, err := txnRepo.FindByTransactionID(ctx, "txn_1")
	require.NoError(t, err)
	assert.Equal(t, "Espresso Machine", txn.ProductName)
}
