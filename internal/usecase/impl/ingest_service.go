package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lens/internal/delivery/context"
	"lens/internal/domain/constants"
	"lens/internal/domain/entity"
	domainerrors "lens/internal/domain/errors"
	"lens/internal/domain/repository"
	"lens/internal/domain/service"
	"lens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ingestService implements IngestUsecase and AnalyticsUsecase. Writes come
// from the ingestion collaborator and reads from the dashboards; both sides
// share the repositories, so keeping them together avoids a second wiring of
// the same dependencies.
type ingestService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	profileRepo     repository.CustomerProfileRepository
	publisher       service.EventPublisher
	logger          *slog.Logger
}

// IngestServiceParams holds dependencies for IngestService, injected by Fx.
type IngestServiceParams struct {
	fx.In

	ProductRepo     repository.ProductRepository
	TransactionRepo repository.TransactionRepository
	ProfileRepo     repository.CustomerProfileRepository
	Publisher       service.EventPublisher
	Logger          *slog.Logger
}

// IngestServiceResult exposes the two usecase facets of the service.
type IngestServiceResult struct {
	fx.Out

	Ingest    usecase.IngestUsecase
	Analytics usecase.AnalyticsUsecase
}

// NewIngestService is the constructor for ingestService.
func NewIngestService(params IngestServiceParams) IngestServiceResult {
	srv := &ingestService{
		productRepo:     params.ProductRepo,
		transactionRepo: params.TransactionRepo,
		profileRepo:     params.ProfileRepo,
		publisher:       params.Publisher,
		logger:          params.Logger,
	}

	return IngestServiceResult{Ingest: srv, Analytics: srv}
}

func (srv *ingestService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// IngestProduct stores a catalog record. A missing ProductID gets a
// generated one; a duplicate ProductID is a conflict, never an overwrite.
func (srv *ingestService) IngestProduct(ctx context.Context, input usecase.IngestProductInput) (*entity.Product, error) {
	product := &entity.Product{
		ProductID:    input.ProductID,
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Subcategory:  input.Subcategory,
		Brand:        input.Brand,
		Price:        input.Price,
		Cost:         input.Cost,
		StockLevel:   input.StockLevel,
		ReorderPoint: input.ReorderPoint,
		SupplierID:   input.SupplierID,
		Attributes:   input.Attributes,
		Images:       input.Images,
		Tags:         input.Tags,
		Ratings:      input.Ratings,
		IsActive:     input.IsActive,
	}
	if product.ProductID == "" {
		product.ProductID = "prod_" + uuid.New().String()
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrDuplicateKey.WrapMessage("product_id already exists: " + product.ProductID)
		}
		if errors.Is(err, repository.ErrInvalidData) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("product record is missing required fields")
		}

		return nil, wrapStoreError(err, "failed to create product")
	}

	srv.publish(ctx, constants.EntityTypeProduct, product.ProductID, "")

	return product, nil
}

// IngestTransaction stores a purchase event. UserID and ProductID are taken
// at face value; referential existence is not checked, so events can arrive
// before or without the records they reference.
func (srv *ingestService) IngestTransaction(ctx context.Context, input usecase.IngestTransactionInput) (*entity.Transaction, error) {
	txn := &entity.Transaction{
		TransactionID:     input.TransactionID,
		UserID:            input.UserID,
		ProductID:         input.ProductID,
		ProductName:       input.ProductName,
		Category:          input.Category,
		Subcategory:       input.Subcategory,
		Quantity:          input.Quantity,
		UnitPrice:         input.UnitPrice,
		TotalAmount:       input.TotalAmount,
		DiscountAmount:    input.DiscountAmount,
		PaymentMethod:     input.PaymentMethod,
		TransactionStatus: input.TransactionStatus,
		Timestamp:         input.Timestamp,
		SessionID:         input.SessionID,
		DeviceType:        input.DeviceType,
		Location:          input.Location,
		MarketingSource:   input.MarketingSource,
	}
	if txn.TransactionID == "" {
		txn.TransactionID = "txn_" + uuid.New().String()
	}
	if txn.Timestamp.IsZero() {
		txn.Timestamp = time.Now().UTC()
	}

	if err := srv.transactionRepo.Create(ctx, txn); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, domainerrors.ErrDuplicateKey.WrapMessage("transaction_id already exists: " + txn.TransactionID)
		}
		if errors.Is(err, repository.ErrInvalidData) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("transaction record is missing required fields")
		}

		return nil, wrapStoreError(err, "failed to create transaction")
	}

	srv.publish(ctx, constants.EntityTypeTransaction, txn.TransactionID, txn.UserID)

	return txn, nil
}

// UpsertProfile creates the profile for a user_id, or replaces its
// sub-documents wholesale when one already exists. Wholesale replacement
// matches how the ingestion pipeline works: it always sends the full
// document it computed.
func (srv *ingestService) UpsertProfile(ctx context.Context, input usecase.IngestProfileInput) (*entity.CustomerProfile, error) {
	if input.UserID == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("user_id is required")
	}

	profile := &entity.CustomerProfile{
		UserID:      input.UserID,
		Demographic: input.Demographic,
		Behavior:    input.Behavior,
		Engagement:  input.Engagement,
		Lifecycle:   input.Lifecycle,
		Preferences: input.Preferences,
	}

	err := srv.profileRepo.Create(ctx, profile)
	if errors.Is(err, repository.ErrDuplicateKey) {
		err = srv.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, wrapStoreError(err, "failed to upsert customer profile")
	}

	srv.publish(ctx, constants.EntityTypeCustomerProfile, profile.UserID, profile.UserID)

	return profile, nil
}

// publish announces an accepted write. Failures are logged and swallowed:
// the row is already durable, and the scoring process reconciles from the
// store on its own schedule.
func (srv *ingestService) publish(ctx context.Context, entityType, entityID, userID string) {
	event := &service.IngestEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
	if err := srv.publisher.PublishIngestEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish ingest event",
			slog.String("entity_type", entityType),
			slog.String("entity_id", entityID),
			slog.Any("error", err),
		)
	}
}

// GetProduct returns a single catalog record.
func (srv *ingestService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, wrapStoreError(err, "failed to find product")
	}

	return product, nil
}

// SearchProducts runs a case-insensitive free-text search over product
// names and descriptions.
func (srv *ingestService) SearchProducts(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	products, err := srv.productRepo.Search(ctx, query, limit)
	if err != nil {
		return nil, wrapStoreError(err, "failed to search products")
	}

	return products, nil
}

// GetProfile returns the analytics profile for a user_id. The identifier is
// not required to match any staff account.
func (srv *ingestService) GetProfile(ctx context.Context, userID string) (*entity.CustomerProfile, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, wrapStoreError(err, "failed to find customer profile")
	}

	return profile, nil
}

// GetTransaction returns a single purchase event.
func (srv *ingestService) GetTransaction(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	txn, err := srv.transactionRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, domainerrors.ErrTransactionNotFound
		}

		return nil, wrapStoreError(err, "failed to find transaction")
	}

	return txn, nil
}

// ListUserTransactions returns a user's purchase history, newest first.
func (srv *ingestService) ListUserTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	txns, err := srv.transactionRepo.ListByUserID(ctx, userID, limit)
	if err != nil {
		return nil, wrapStoreError(err, "failed to list transactions")
	}

	return txns, nil
}
