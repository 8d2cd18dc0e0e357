package handler

import (
	"context"
	"io"

	appcatalog "github.com/fliamecomm/storefront/internal/application/catalog"
	appidentity "github.com/fliamecomm/storefront/internal/application/identity"
	appshopping "github.com/fliamecomm/storefront/internal/application/shopping"
	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/google/uuid"
)

// AuthService is the account and session API used by AuthHandler
type AuthService interface {
	Register(ctx context.Context, input appidentity.RegisterInput) (*appidentity.AuthResult, error)
	Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// CatalogService is the catalog API used by the storefront and staff handlers
type CatalogService interface {
	Search(ctx context.Context, viewer identity.Identity, query appcatalog.ProductQuery) (*appcatalog.CatalogPage, error)
	ListBrands(ctx context.Context) ([]catalog.Brand, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	ListAllProducts(ctx context.Context) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, input appcatalog.CreateProductInput) (*catalog.Product, error)
	OpenImage(ctx context.Context, key string) (io.ReadCloser, *appcatalog.StoredObject, error)
	ExportProducts(ctx context.Context, w io.Writer) error
}

// LikeService toggles likes
type LikeService interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (shopping.LikeResult, error)
}

// CartService manages a user's cart
type CartService interface {
	Add(ctx context.Context, userID, productID uuid.UUID) (*shopping.CartItem, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) (*appshopping.CartView, error)
}

// FavoritesService builds the favorites page
type FavoritesService interface {
	Get(ctx context.Context, userID uuid.UUID) (*appshopping.Favorites, error)
}
