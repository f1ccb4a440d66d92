package entity

import "time"

// Product is a catalog record keyed by a unique ProductID. It carries the
// pricing, stock and descriptive attributes the dashboards aggregate over,
// and supports free-text search across name and description.
type Product struct {
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
	Attributes   ProductAttributes
	Images       []string
	Ratings      ProductRatings
	Tags         []string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductAttributes holds the physical characteristics of a product.
type ProductAttributes struct {
	Color      string     `json:"color"`
	Size       string     `json:"size"`
	Weight     float64    `json:"weight"`
	Dimensions Dimensions `json:"dimensions"`
}

// Dimensions is a length/width/height triple in catalog units.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ProductRatings is a running aggregate of customer ratings.
type ProductRatings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
