package catalog

import (
	"context"
	"io"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/domain/shopping"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) FindAll(ctx context.Context) ([]catalog.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Brand), args.Error(1)
}

func (m *MockBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *MockBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBrandRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, userID, productID uuid.UUID) (shopping.LikeResult, error) {
	args := m.Called(ctx, userID, productID)
	return args.Get(0).(shopping.LikeResult), args.Error(1)
}

func (m *MockLikeRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) CountByProducts(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}

func (m *MockLikeRepository) LikedProductIDs(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	args := m.Called(ctx, userID, productIDs)
	return args.Get(0).(map[uuid.UUID]bool), args.Error(1)
}

func (m *MockLikeRepository) FindProductIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockImageStorage) Get(ctx context.Context, key string) (io.ReadCloser, *StoredObject, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(*StoredObject), args.Error(2)
}

func (m *MockImageStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockImageProcessor struct {
	mock.Mock
}

func (m *MockImageProcessor) Process(r io.Reader) (*ProcessedImage, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProcessedImage), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := make([]any, 0, len(events)+1)
	args = append(args, ctx)
	for _, e := range events {
		args = append(args, e)
	}
	return m.Called(args...).Error(0)
}
