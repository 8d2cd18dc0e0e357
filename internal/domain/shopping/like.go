package shopping

import (
	"time"

	"github.com/google/uuid"
)

// ProductLike records that a user likes a product. (UserID, ProductID) is unique.
type ProductLike struct {
	UserID    uuid.UUID
	ProductID uuid.UUID
	CreatedAt time.Time
}

// NewProductLike creates a like stamped with the current time
func NewProductLike(userID, productID uuid.UUID) ProductLike {
	return ProductLike{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
}

// LikeResult is the state after a toggle
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}
