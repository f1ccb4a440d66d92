package postgres

import (
	"context"

	"lens/internal/domain/entity"
	"lens/internal/domain/repository"
	"lens/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultListLimit = 100

// transactionRepository implements repository.TransactionRepository using GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// FindByTransactionID retrieves a single transaction by its unique id.
func (repo *transactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	var txnM model.TransactionModel
	err := repo.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&txnM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransactionNotFound
		}

		return nil, storeError(err, "failed to find transaction")
	}

	return toTransactionDomain(&txnM), nil
}

// Create persists a new transaction. No referential check is made against
// users or products; user_id and product_id are stored as given.
func (repo *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	txnM := fromTransactionDomain(txn)

	if err := repo.db.WithContext(ctx).Create(txnM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}
		if isNotNullConstraintViolation(err) {
			return repository.ErrInvalidData
		}

		return storeError(err, "failed to create transaction")
	}

	txn.CreatedAt = txnM.CreatedAt
	txn.UpdatedAt = txnM.UpdatedAt

	return nil
}

// ListByUserID returns a user's transactions, newest first. The composite
// (user_id, timestamp) index serves this query directly.
func (repo *transactionRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	var txnMs []model.TransactionModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&txnMs).Error
	if err != nil {
		return nil, storeError(err, "failed to list transactions by user")
	}

	txns := make([]*entity.Transaction, 0, len(txnMs))
	for i := range txnMs {
		txns = append(txns, toTransactionDomain(&txnMs[i]))
	}

	return txns, nil
}

func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	if data == nil {
		return nil
	}

	return &entity.Transaction{
		TransactionID:     data.TransactionID,
		UserID:            data.UserID,
		ProductID:         data.ProductID,
		ProductName:       data.ProductName,
		Category:          data.Category,
		Subcategory:       data.Subcategory,
		Quantity:          data.Quantity,
		UnitPrice:         data.UnitPrice,
		TotalAmount:       data.TotalAmount,
		DiscountAmount:    data.DiscountAmount,
		PaymentMethod:     data.PaymentMethod,
		TransactionStatus: data.TransactionStatus,
		Timestamp:         data.Timestamp,
		SessionID:         data.SessionID,
		DeviceType:        data.DeviceType,
		Location:          data.Location,
		MarketingSource:   data.MarketingSource,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromTransactionDomain(data *entity.Transaction) *model.TransactionModel {
	if data == nil {
		return nil
	}

	return &model.TransactionModel{
		TransactionID:     data.TransactionID,
		UserID:            data.UserID,
		ProductID:         data.ProductID,
		ProductName:       data.ProductName,
		Category:          data.Category,
		Subcategory:       data.Subcategory,
		Quantity:          data.Quantity,
		UnitPrice:         data.UnitPrice,
		TotalAmount:       data.TotalAmount,
		DiscountAmount:    data.DiscountAmount,
		PaymentMethod:     data.PaymentMethod,
		TransactionStatus: data.TransactionStatus,
		Timestamp:         data.Timestamp,
		SessionID:         data.SessionID,
		DeviceType:        data.DeviceType,
		Location:          data.Location,
		MarketingSource:   data.MarketingSource,
	}
}
