package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll returns every category ordered by name
	FindAll(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category and, through the foreign key, its products
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks if a category exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	// FindByID finds a brand by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// FindAll returns every brand ordered by name
	FindAll(ctx context.Context) ([]Brand, error)

	// Save creates or updates a brand
	Save(ctx context.Context, brand *Brand) error

	// Delete deletes a brand and, through the foreign key, its products
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByID checks if a brand exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
