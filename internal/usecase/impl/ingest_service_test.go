package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"lens/internal/domain/constants"
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

// ingestServiceFixtures holds all test dependencies for ingest service tests.
type ingestServiceFixtures struct {
	ingest          usecase.IngestUsecase
	analytics       usecase.AnalyticsUsecase
	productRepo     *mockRepo.MockProductRepository
	transactionRepo *mockRepo.MockTransactionRepository
	profileRepo     *mockRepo.MockCustomerProfileRepository
	publisher       *mockSvc.MockEventPublisher
}

func createTestIngestService(t *testing.T) ingestServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	transactionRepo := mockRepo.NewMockTransactionRepository(t)
	profileRepo := mockRepo.NewMockCustomerProfileRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	result := NewIngestService(IngestServiceParams{
		ProductRepo:     productRepo,
		TransactionRepo: transactionRepo,
		ProfileRepo:     profileRepo,
		Publisher:       publisher,
		Logger:          logger,
	})

	return ingestServiceFixtures{
		ingest:          result.Ingest,
		analytics:       result.Analytics,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		profileRepo:     profileRepo,
		publisher:       publisher,
	}
}

func TestIngestService_IngestProduct_GeneratesID(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	fx.publisher.On("PublishIngestEvent", ctx, mock.MatchedBy(func(e *service.IngestEvent) bool {
		return e.EntityType == constants.EntityTypeProduct && e.EntityID != ""
	})).Return(nil)

	product, err := fx.ingest.IngestProduct(ctx, usecase.IngestProductInput{
		Name:     "Espresso Machine",
		Category: "kitchen",
		Price:    199.90,
		IsActive: true,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.ProductID, "prod_"))
}

func TestIngestService_IngestProduct_KeepsProvidedID(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	fx.publisher.On("PublishIngestEvent", ctx, mock.AnythingOfType("*service.IngestEvent")).
		Return(nil)

	product, err := fx.ingest.IngestProduct(ctx, usecase.IngestProductInput{
		ProductID: "prod_upstream_42",
		Name:      "Espresso Machine",
	})

	require.NoError(t, err)
	assert.Equal(t, "prod_upstream_42", product.ProductID)
}

func TestIngestService_IngestProduct_DuplicateIsConflict(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Return(repository.ErrDuplicateKey)

	_, err := fx.ingest.IngestProduct(ctx, usecase.IngestProductInput{
		ProductID: "prod_1",
		Name:      "Espresso Machine",
	})

	assert.ErrorIs(t, err, domainerrors.ErrDuplicateKey)
	fx.publisher.AssertNotCalled(t, "PublishIngestEvent", mock.Anything, mock.Anything)
}

func TestIngestService_IngestTransaction_FillsDefaults(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	var stored *entity.Transaction
	fx.transactionRepo.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entity.Transaction)
		}).
		Return(nil)
	fx.publisher.On("PublishIngestEvent", ctx, mock.MatchedBy(func(e *service.IngestEvent) bool {
		return e.EntityType == constants.EntityTypeTransaction && e.UserID == "user_77"
	})).Return(nil)

	txn, err := fx.ingest.IngestTransaction(ctx, usecase.IngestTransactionInput{
		UserID:      "user_77",
		ProductID:   "prod_1",
		ProductName: "Espresso Machine",
		Quantity:    1,
		TotalAmount: 199.90,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(txn.TransactionID, "txn_"))
	assert.WithinDuration(t, time.Now().UTC(), txn.Timestamp, time.Minute)
	assert.Same(t, stored, txn)
}

func TestIngestService_IngestTransaction_PublishFailureIsNotFatal(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	fx.transactionRepo.On("Create", ctx, mock.AnythingOfType("*entity.Transaction")).
		Return(nil)
	fx.publisher.On("PublishIngestEvent", ctx, mock.AnythingOfType("*service.IngestEvent")).
		Return(errors.New("broker unavailable"))

	_, err := fx.ingest.IngestTransaction(ctx, usecase.IngestTransactionInput{
		UserID: "user_77",
	})

	// The row is durable; publishing is best-effort.
	require.NoError(t, err)
}

func TestIngestService_UpsertProfile_CreatesThenUpdates(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	fx.profileRepo.On("Create", ctx, mock.AnythingOfType("*entity.CustomerProfile")).
		Return(repository.ErrDuplicateKey).Once()
	fx.profileRepo.On("Update", ctx, mock.AnythingOfType("*entity.CustomerProfile")).
		Return(nil).Once()
	fx.publisher.On("PublishIngestEvent", ctx, mock.AnythingOfType("*service.IngestEvent")).
		Return(nil)

	profile, err := fx.ingest.UpsertProfile(ctx, usecase.IngestProfileInput{
		UserID:    "user_77",
		Lifecycle: entity.Lifecycle{LifecycleStage: "active"},
	})

	require.NoError(t, err)
	assert.Equal(t, "user_77", profile.UserID)
}

func TestIngestService_UpsertProfile_RequiresUserID(t *testing.T) {
	fx := createTestIngestService(t)

	_, err := fx.ingest.UpsertProfile(context.Background(), usecase.IngestProfileInput{})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestIngestService_GetProduct_NotFound(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByProductID", ctx, "prod_missing").
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.analytics.GetProduct(ctx, "prod_missing")

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestIngestService_GetProfile_IndependentOfAccounts(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	// Profiles are keyed by the analytics-side user_id; no staff account
	// with this identifier needs to exist.
	fx.profileRepo.On("FindByUserID", ctx, "user_external_9").
		Return(&entity.CustomerProfile{UserID: "user_external_9"}, nil)

	profile, err := fx.analytics.GetProfile(ctx, "user_external_9")

	require.NoError(t, err)
	assert.Equal(t, "user_external_9", profile.UserID)
}

func TestIngestService_ListUserTransactions(t *testing.T) {
	fx := createTestIngestService(t)
	ctx := context.Background()

	fx.transactionRepo.On("ListByUserID", ctx, "user_77", 10).
		Return([]*entity.Transaction{
			{TransactionID: "txn_2"},
			{TransactionID: "txn_1"},
		}, nil)

	txns, err := fx.analytics.ListUserTransactions(ctx, "user_77", 10)

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "txn_2", txns[0].TransactionID)
}
