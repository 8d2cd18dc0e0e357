package shopping

import (
	"context"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/fliamecomm/storefront/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CartService manages per-user carts
type CartService struct {
	productRepo catalog.ProductRepository
	cartRepo    shopping.CartRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	productRepo catalog.ProductRepository,
	cartRepo shopping.CartRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		productRepo: productRepo,
		cartRepo:    cartRepo,
		events:      events,
		logger:      logger,
	}
}

// Add puts one unit of the product in the user's cart.
// An unknown product fails with NOT_FOUND and leaves the cart untouched.
func (s *CartService) Add(ctx context.Context, userID, productID uuid.UUID) (item *shopping.CartItem, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "CartService", "Add",
		attribute.String("product_id", productID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if err = requireProduct(ctx, s.productRepo, productID); err != nil {
		return nil, err
	}

	item, err = s.cartRepo.AddOne(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Added to cart",
		zap.String("user_id", userID.String()),
		zap.Stringer("item", item),
	)
	publish(ctx, s.events, s.logger, shopping.NewCartItemAddedEvent(item))

	return item, nil
}

// Remove deletes the product's line from the user's cart. Removing a missing line is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	removed, err := s.cartRepo.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}

	s.logger.Info("Removed from cart",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
	)
	publish(ctx, s.events, s.logger, shopping.NewCartItemRemovedEvent(userID, productID))
	return nil
}

// List returns the user's cart lines, oldest first, with subtotals and total
func (s *CartService) List(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := shopping.Cart{UserID: userID, Items: items}
	view := &CartView{
		Lines:     make([]CartLine, 0, len(items)),
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}
	for i := range items {
		item := &items[i]
		if item.Product == nil {
			continue
		}
		view.Lines = append(view.Lines, CartLine{
			ProductID: item.ProductID,
			Product:   *item.Product,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return view, nil
}
