package postgres

import (
	"context"

	"lens/internal/domain/entity"
	"lens/internal/domain/repository"
	"lens/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultSearchLimit = 50

// productRepository implements repository.ProductRepository using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByProductID retrieves a single product by its unique product_id.
func (repo *productRepository) FindByProductID(ctx context.Context, productID string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&productM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, storeError(err, "failed to find product")
	}

	return toProductDomain(&productM), nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateKey
		}
		if isNotNullConstraintViolation(err) {
			return repository.ErrInvalidData
		}

		return storeError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Search performs a case-insensitive free-text match over product name and
// description, newest first.
func (repo *productRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	pattern := "%" + query + "%"

	var productMs []model.ProductModel
	// lower() keeps the match case-insensitive on both PostgreSQL and the
	// SQLite test database.
	err := repo.db.WithContext(ctx).
		Where("lower(name) LIKE lower(?) OR lower(description) LIKE lower(?)", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&productMs).Error
	if err != nil {
		return nil, storeError(err, "failed to search products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ProductID:    data.ProductID,
		Name:         data.Name,
		Description:  data.Description,
		Category:     data.Category,
		Subcategory:  data.Subcategory,
		Brand:        data.Brand,
		Price:        data.Price,
		Cost:         data.Cost,
		StockLevel:   data.StockLevel,
		ReorderPoint: data.ReorderPoint,
		SupplierID:   data.SupplierID,
		Attributes:   data.Attributes,
		Images:       data.Images,
		Ratings:      data.Ratings,
		Tags:         data.Tags,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ProductID:    data.ProductID,
		Name:         data.Name,
		Description:  data.Description,
		Category:     data.Category,
		Subcategory:  data.Subcategory,
		Brand:        data.Brand,
		Price:        data.Price,
		Cost:         data.Cost,
		StockLevel:   data.StockLevel,
		ReorderPoint: data.ReorderPoint,
		SupplierID:   data.SupplierID,
		Attributes:   data.Attributes,
		Images:       data.Images,
		Ratings:      data.Ratings,
		Tags:         data.Tags,
		IsActive:     data.IsActive,
	}
}
