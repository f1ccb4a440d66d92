package model

import (
	"time"

	"lens/internal/domain/entity"
)

// ProductModel mirrors the 'products' table. Name and description are plain
// columns so the repository can run free-text matches over them.
type ProductModel struct {
	ProductID    string                   `gorm:"column:product_id;type:varchar(64);primaryKey"`
	Name         string                   `gorm:"type:varchar(255)"`
	Description  string                   `gorm:"type:text"`
	Category     string                   `gorm:"type:varchar(100);index"`
	Subcategory  string                   `gorm:"type:varchar(100)"`
	Brand        string                   `gorm:"type:varchar(100);index"`
	Price        float64
	Cost         float64
	StockLevel   int
	ReorderPoint int
	SupplierID   string                   `gorm:"column:supplier_id;type:varchar(64)"`
	Attributes   entity.ProductAttributes `gorm:"serializer:json;type:jsonb"`
	Images       []string                 `gorm:"serializer:json;type:jsonb"`
	Ratings      entity.ProductRatings    `gorm:"serializer:json;type:jsonb"`
	Tags         []string                 `gorm:"serializer:json;type:jsonb"`
	IsActive     bool                     `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
