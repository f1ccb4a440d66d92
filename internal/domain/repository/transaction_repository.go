package repository

import (
	"context"
	"errors"

	"lens/internal/domain/entity"
)

// ErrTransactionNotFound is returned when no transaction exists for a transaction_id.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository persists purchase events. Transactions reference
// user_id and product_id by value; a transaction may legitimately reference a
// user_id that has no customer profile.
type TransactionRepository interface {
	// FindByTransactionID retrieves a single transaction by its unique id.
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error)

	// Create persists a new transaction. Returns ErrDuplicateKey when the
	// transaction_id is already present.
	Create(ctx context.Context, txn *entity.Transaction) error

	// ListByUserID returns a user's transactions, newest first, capped at
	// limit; limit <= 0 applies a server default.
	ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)
}
