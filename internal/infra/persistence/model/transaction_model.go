package model

import (
	"time"

	"lens/internal/domain/entity"
)

// TransactionModel mirrors the 'transactions' table. user_id and product_id
// are indexed logical references, not foreign keys. product_name, category
// and subcategory are snapshot columns frozen at transaction time. The
// composite (user_id, timestamp) index serves the per-customer history query.
type TransactionModel struct {
	TransactionID     string          `gorm:"column:transaction_id;type:varchar(64);primaryKey"`
	UserID            string          `gorm:"column:user_id;type:varchar(64);index;index:idx_transactions_user_time,priority:1"`
	ProductID         string          `gorm:"column:product_id;type:varchar(64);index"`
	ProductName       string          `gorm:"type:varchar(255)"`
	Category          string          `gorm:"type:varchar(100);index"`
	Subcategory       string          `gorm:"type:varchar(100)"`
	Quantity          int
	UnitPrice         float64
	TotalAmount       float64
	DiscountAmount    float64
	PaymentMethod     string          `gorm:"type:varchar(50)"`
	TransactionStatus string          `gorm:"type:varchar(50);index"`
	Timestamp         time.Time       `gorm:"index:,sort:desc;index:idx_transactions_user_time,priority:2,sort:desc"`
	SessionID         string          `gorm:"column:session_id;type:varchar(64)"`
	DeviceType        string          `gorm:"type:varchar(50)"`
	Location          entity.Location `gorm:"serializer:json;type:jsonb"`
	MarketingSource   string          `gorm:"type:varchar(100)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}
