package shopping

import (
	"context"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/google/uuid"
)

// FavoritesService builds the read-only favorites page
type FavoritesService struct {
	productRepo catalog.ProductRepository
	likeRepo    shopping.LikeRepository
	cartRepo    shopping.CartRepository
}

// NewFavoritesService creates a new FavoritesService
func NewFavoritesService(
	productRepo catalog.ProductRepository,
	likeRepo shopping.LikeRepository,
	cartRepo shopping.CartRepository,
) *FavoritesService {
	return &FavoritesService{
		productRepo: productRepo,
		likeRepo:    likeRepo,
		cartRepo:    cartRepo,
	}
}

// Get returns the products the user likes, most recent first, and the products in the user's cart
func (s *FavoritesService) Get(ctx context.Context, userID uuid.UUID) (*Favorites, error) {
	likedIDs, err := s.likeRepo.FindProductIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	liked := []catalog.Product{}
	if len(likedIDs) > 0 {
		products, err := s.productRepo.FindByIDs(ctx, likedIDs)
		if err != nil {
			return nil, err
		}
		liked = orderByIDs(products, likedIDs)
	}

	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := shopping.Cart{UserID: userID, Items: items}

	return &Favorites{Liked: liked, InCart: cart.Products()}, nil
}

// orderByIDs arranges products in the order of ids, dropping ids with no product
func orderByIDs(products []catalog.Product, ids []uuid.UUID) []catalog.Product {
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}
