package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	// Search matches product names case-insensitively by substring
	Search string
	// CategoryID restricts the listing to one category
	CategoryID *uuid.UUID
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID, with brand and category names filled in
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks if a product exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Count counts all products
	Count(ctx context.Context) (int64, error)
}
