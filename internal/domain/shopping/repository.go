package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// AddOne inserts a (user, product) item with quantity 1, or increments the
	// existing item's quantity by 1, in a single atomic statement.
	// It returns the resulting item.
	AddOne(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)

	// Remove deletes the (user, product) item. It returns whether a row was deleted;
	// a missing item is not an error.
	Remove(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// Find returns the (user, product) item
	Find(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)

	// FindByUser returns the user's items with products loaded, oldest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
}

// LikeRepository defines the interface for product like persistence
type LikeRepository interface {
	// Toggle flips the like for (user, product) and returns the new state
	// together with the product's like count, atomically.
	Toggle(ctx context.Context, userID, productID uuid.UUID) (LikeResult, error)

	// Exists tests membership of the user in the product's liked-by set
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)

	// CountByProduct counts likes of a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// CountByProducts counts likes for many products at once
	CountByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// LikedProductIDs returns which of the given products the user likes.
	// An empty productIDs slice means all of the user's likes.
	LikedProductIDs(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error)

	// FindProductIDsByUser returns the products the user likes, most recent first
	FindProductIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
