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
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input appidentity.RegisterInput) (*appidentity.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) GetUser(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Search(ctx context.Context, viewer identity.Identity, query appcatalog.ProductQuery) (*appcatalog.CatalogPage, error) {
	args := m.Called(ctx, viewer, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.CatalogPage), args.Error(1)
}

func (m *MockCatalogService) ListBrands(ctx context.Context) ([]catalog.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCatalogService) ListAllProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, input appcatalog.CreateProductInput) (*catalog.Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalogService) OpenImage(ctx context.Context, key string) (io.ReadCloser, *appcatalog.StoredObject, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*appcatalog.StoredObject), args.Error(2)
}

func (m *MockCatalogService) ExportProducts(ctx context.Context, w io.Writer) error {
	return m.Called(ctx, w).Error(0)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) Toggle(ctx context.Context, userID, productID uuid.UUID) (shopping.LikeResult, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(shopping.LikeResult), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Add(ctx context.Context, userID, productID uuid.UUID) (*shopping.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.CartItem), args.Error(1)
}

func (m *MockCartService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockCartService) List(ctx context.Context, userID uuid.UUID) (*appshopping.CartView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appshopping.CartView), args.Error(1)
}

type MockFavoritesService struct {
	mock.Mock
}

func (m *MockFavoritesService) Get(ctx context.Context, userID uuid.UUID) (*appshopping.Favorites, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appshopping.Favorites), args.Error(1)
}
