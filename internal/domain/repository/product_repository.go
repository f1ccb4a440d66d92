package repository

import (
	"context"
	"errors"

	"lens/internal/domain/entity"
)

// ErrProductNotFound is returned when no product exists for a product_id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository persists catalog products.
type ProductRepository interface {
	// FindByProductID retrieves a single product by its unique product_id.
	FindByProductID(ctx context.Context, productID string) (*entity.Product, error)

	// Create persists a new product. Returns ErrDuplicateKey when the
	// product_id is already present.
	Create(ctx context.Context, product *entity.Product) error

	// Search performs a free-text search over product name and description.
	// Results are capped at limit; limit <= 0 applies a server default.
	Search(ctx context.Context, query string, limit int) ([]*entity.Product, error)
}
