package event

import (
	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
)

// RegisterAllEvents registers every storefront event type with the serializer
func RegisterAllEvents(serializer *EventSerializer) {
	serializer.Register(catalog.EventTypeProductCreated, &catalog.ProductCreatedEvent{})
	serializer.Register(identity.EventTypeUserRegistered, &identity.UserRegisteredEvent{})
	serializer.Register(shopping.EventTypeProductLiked, &shopping.ProductLikeToggledEvent{})
	serializer.Register(shopping.EventTypeProductUnliked, &shopping.ProductLikeToggledEvent{})
	serializer.Register(shopping.EventTypeCartItemAdded, &shopping.CartItemAddedEvent{})
	serializer.Register(shopping.EventTypeCartItemRemoved, &shopping.CartItemRemovedEvent{})
}

// AllEventTypes lists the event types published by the storefront services
func AllEventTypes() []string {
	return []string{
		catalog.EventTypeProductCreated,
		identity.EventTypeUserRegistered,
		shopping.EventTypeProductLiked,
		shopping.EventTypeProductUnliked,
		shopping.EventTypeCartItemAdded,
		shopping.EventTypeCartItemRemoved,
	}
}
