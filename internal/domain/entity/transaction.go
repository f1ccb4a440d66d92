package entity

import "time"

// Transaction is a single purchase event keyed by a unique TransactionID.
// UserID and ProductID are logical references by value; neither is checked
// against the users or products tables at write time. ProductName, Category
// and Subcategory are denormalized snapshots captured when the transaction
// happened. They intentionally do not track later Product edits, so
// historical reports stay faithful to what the customer actually saw.
type Transaction struct {
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
	Location          Location
	MarketingSource   string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
