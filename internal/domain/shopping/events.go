package shopping

import (
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeCart        = "Cart"
	AggregateTypeProductLike = "ProductLike"
)

// Event type constants
const (
	EventTypeProductLiked    = "ProductLiked"
	EventTypeProductUnliked  = "ProductUnliked"
	EventTypeCartItemAdded   = "CartItemAdded"
	EventTypeCartItemRemoved = "CartItemRemoved"
)

// ProductLikeToggledEvent is published on every like toggle.
// Its type is ProductLiked or ProductUnliked.
type ProductLikeToggledEvent struct {
	shared.BaseDomainEvent
	UserID     uuid.UUID `json:"user_id"`
	ProductID  uuid.UUID `json:"product_id"`
	LikesCount int64     `json:"likes_count"`
}

// NewProductLikeToggledEvent creates the event matching the toggle result
func NewProductLikeToggledEvent(userID, productID uuid.UUID, result LikeResult) *ProductLikeToggledEvent {
	eventType := EventTypeProductUnliked
	if result.Liked {
		eventType = EventTypeProductLiked
	}
	return &ProductLikeToggledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProductLike, productID),
		UserID:          userID,
		ProductID:       productID,
		LikesCount:      result.LikesCount,
	}
}

// CartItemAddedEvent is published after a cart add
type CartItemAddedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// NewCartItemAddedEvent creates a new CartItemAddedEvent
func NewCartItemAddedEvent(item *CartItem) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemAdded, AggregateTypeCart, item.UserID),
		UserID:          item.UserID,
		ProductID:       item.ProductID,
		Quantity:        item.Quantity,
	}
}

// CartItemRemovedEvent is published when a cart line is deleted
type CartItemRemovedEvent struct {
	shared.BaseDomainEvent
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
}

// NewCartItemRemovedEvent creates a new CartItemRemovedEvent
func NewCartItemRemovedEvent(userID, productID uuid.UUID) *CartItemRemovedEvent {
	return &CartItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemRemoved, AggregateTypeCart, userID),
		UserID:          userID,
		ProductID:       productID,
	}
}
