package entity

import "time"

// CustomerProfile aggregates everything the analytics pipeline knows about a
// single customer. UserID is a logical reference: the profile lives, changes
// and is queried independently of any User record with the same identifier,
// and no cascading delete is implied. Exactly one profile may exist per
// UserID.
//
// The lifecycle scores (churn probability, lifetime value, predicted next
// purchase) are storage placeholders written by an external scoring process;
// nothing in this repository computes them.
type CustomerProfile struct {
	UserID      string
	Demographic Demographic
	Behavior    Behavior
	Engagement  Engagement
	Lifecycle   Lifecycle
	Preferences CustomerPreferences
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Demographic describes who the customer is.
type Demographic struct {
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	IncomeLevel string   `json:"income_level"`
	Location    Location `json:"location"`
}

// Location is a coarse geographic placement shared by profiles and
// transactions.
type Location struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode,omitempty"`
}

// Behavior captures aggregated purchasing behavior.
type Behavior struct {
	TotalOrders            int        `json:"total_orders"`
	TotalSpent             float64    `json:"total_spent"`
	AverageOrderValue      float64    `json:"average_order_value"`
	LastPurchaseDate       *time.Time `json:"last_purchase_date"`
	PurchaseFrequency      float64    `json:"purchase_frequency"`
	PreferredCategories    []string   `json:"preferred_categories"`
	PreferredPaymentMethod string     `json:"preferred_payment_method"`
	DevicePreference       string     `json:"device_preference"`
}

// Engagement captures marketing-channel interaction rates.
type Engagement struct {
	EmailOpenRate               float64 `json:"email_open_rate"`
	ClickThroughRate            float64 `json:"click_through_rate"`
	SocialMediaEngagement       float64 `json:"social_media_engagement"`
	CustomerServiceInteractions int     `json:"customer_service_interactions"`
}

// Lifecycle holds the customer's position in the retention funnel together
// with the externally computed scores.
type Lifecycle struct {
	AcquisitionDate       *time.Time `json:"acquisition_date"`
	LifecycleStage        string     `json:"lifecycle_stage"`
	ChurnProbability      float64    `json:"churn_probability"`
	LifetimeValue         float64    `json:"lifetime_value"`
	PredictedNextPurchase *time.Time `json:"predicted_next_purchase"`
}

// CustomerPreferences records self-reported customer preferences.
type CustomerPreferences struct {
	CommunicationPreferences []string `json:"communication_preferences"`
	ProductInterests         []string `json:"product_interests"`
	PriceSensitivity         string   `json:"price_sensitivity"`
}
