package usecase

import (
	"context"
	"time"

	"lens/internal/domain/entity"
)

// IngestProductInput carries a catalog record pushed by the ingestion
// pipeline. ProductID is optional; one is generated when absent.
type IngestProductInput struct {
	ProductID    string
	Name         string
	Description  string
	Category     string
	Subcategory  string
	Brand        string
	Price        float64
	Cost         float64
	StockLevel   int
	ReorderPoint int
	SupplierID   string
	Attributes   entity.ProductAttributes
	Images       []string
	Tags         []string
	Ratings      entity.ProductRatings
	IsActive     bool
}

// IngestTransactionInput carries a purchase record with its denormalized
// product snapshot. TransactionID is optional; one is generated when absent.
type IngestTransactionInput struct {
	TransactionID     string
	UserID            string
	ProductID         string
	ProductName       string
	Category          string
	Subcategory       string
	Quantity          int
	UnitPrice         float64
	TotalAmount       float64
	DiscountAmount    float64
	PaymentMethod     string
	TransactionStatus string
	Timestamp         time.Time
	SessionID         string
	DeviceType        string
	Location          entity.Location
	MarketingSource   string
}

// IngestProfileInput carries a full customer profile document keyed by the
// analytics-side user_id.
type IngestProfileInput struct {
	UserID      string
	Demographic entity.Demographic
	Behavior    entity.Behavior
	Engagement  entity.Engagement
	Lifecycle   entity.Lifecycle
	Preferences entity.CustomerPreferences
}

// IngestUsecase accepts writes from the ingestion collaborator and announces
// them on the event bus.
type IngestUsecase interface {
	IngestProduct(ctx context.Context, input IngestProductInput) (*entity.Product, error)
	IngestTransaction(ctx context.Context, input IngestTransactionInput) (*entity.Transaction, error)
	UpsertProfile(ctx context.Context, input IngestProfileInput) (*entity.CustomerProfile, error)
}

// AnalyticsUsecase serves read queries for the dashboard collaborator.
type AnalyticsUsecase interface {
	GetProduct(ctx context.Context, productID string) (*entity.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]*entity.Product, error)
	GetProfile(ctx context.Context, userID string) (*entity.CustomerProfile, error)
	GetTransaction(ctx context.Context, transactionID string) (*entity.Transaction, error)
	ListUserTransactions(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)
}
