// Package store provides the product entity and its persistence contract.
package store

// Product represents a product entity in the store.
// Code is the primary key; it is never changed after creation.
// The JSON field names match the on-disk layout of the data file.
type Product struct {
	Code     string  `json:"codigo"`
	Name     string  `json:"nombre"`
	Category string  `json:"categoria"`
	Price    float64 `json:"precio"`
	Quantity int     `json:"cantidad"`
}

// ProductStore is an interface for persisting the full product collection
// as a unit. It abstracts the underlying data store, allowing for different
// implementations (e.g., file, in-memory).
type ProductStore interface {
	// Load reads the persisted collection in its stored order.
	// A missing, unreadable or corrupt file degrades to an empty
	// collection; Load never fails the caller.
	Load() []Product

	// Save overwrites the persisted collection with the given products.
	// Returns error if the collection cannot be written.
	Save(products []Product) error
}
