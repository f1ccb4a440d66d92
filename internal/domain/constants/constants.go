// Package constants defines shared domain-level constants.
package constants

// Pub/Sub provider names accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Ingest event entity types.
const (
	EntityTypeTransaction     = "transaction"
	EntityTypeProduct         = "product"
	EntityTypeCustomerProfile = "customer_profile"
)
