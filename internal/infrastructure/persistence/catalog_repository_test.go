package persistence

import (
	"context"
	"testing"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Phones", "Samsung")
	product := seedProduct(t, db, fx, "Galaxy S24", "999.99")

	t.Run("loads brand and category names", func(t *testing.T) {
		got, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Galaxy S24", got.Name)
		assert.Equal(t, "Samsung", got.BrandName)
		assert.Equal(t, "Phones", got.CategoryName)
		assert.Equal(t, "999.99", got.Price.StringFixed(2))
		assert.Equal(t, catalog.DefaultRating, got.Rating)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	phones := seedCatalog(t, db, "Phones", "Samsung")
	tablets := seedCatalog(t, db, "Tablets", "Apple")
	seedProduct(t, db, phones, "Galaxy S24", "999.99")
	seedProduct(t, db, phones, "Pixel 8", "699.00")
	seedProduct(t, db, tablets, "Galaxy Tab", "499.00")
	seedProduct(t, db, tablets, "iPad 100%_off", "329.00")

	t.Run("no filter returns everything", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, products, 4)
	})

	t.Run("search is a case-insensitive substring", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{Search: "gal"})
		require.NoError(t, err)
		require.Len(t, products, 2)
		for _, p := range products {
			assert.Contains(t, p.Name, "Galaxy")
		}
	})

	t.Run("search combines with category", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{Search: "Gal", CategoryID: &phones.category.ID})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Galaxy S24", products[0].Name)
	})

	t.Run("category alone", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{CategoryID: &tablets.category.ID})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("wildcards in the search text match literally", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{Search: "%_"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "iPad 100%_off", products[0].Name)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		products, err := repo.FindAll(ctx, catalog.ProductFilter{Search: "nokia"})
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_FindAll_WhitespaceSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	fx := seedCatalog(t, db, "Phones", "Google")
	seedProduct(t, db, fx, "Galaxy", "799.00")
	seedProduct(t, db, fx, "Pixel 8", "699.00")

	products, err := repo.FindAll(context.Background(), catalog.ProductFilter{Search: " "})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pixel 8", products[0].Name)
}

func TestGormProductRepository_FindByIDsAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Phones", "Samsung")
	a := seedProduct(t, db, fx, "A", "1.00")
	seedProduct(t, db, fx, "B", "2.00")

	products, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, a.ID, products[0].ID)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormProductRepository_SaveUpdatesImage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()
	fx := seedCatalog(t, db, "Phones", "Samsung")
	product := seedProduct(t, db, fx, "Galaxy S24", "999.99")

	product.SetImage("products/galaxy.jpg")
	require.NoError(t, repo.Save(ctx, product))

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "products/galaxy.jpg", got.Image)
}

func TestGormBrandRepository_DeleteCascadesProducts(t *testing.T) {
	db := setupTestDB(t)
	brands := NewGormBrandRepository(db)
	products := NewGormProductRepository(db)
	ctx := context.Background()

	fx := seedCatalog(t, db, "Phones", "Samsung")
	other, err := catalog.NewBrand("Google")
	require.NoError(t, err)
	require.NoError(t, brands.Save(ctx, other))

	seedProduct(t, db, fx, "Galaxy S24", "999.99")
	seedProduct(t, db, fx, "Galaxy A55", "449.00")
	pixel := seedProduct(t, db, catalogFixture{category: fx.category, brand: other}, "Pixel 8", "699.00")

	require.NoError(t, brands.Delete(ctx, fx.brand.ID))

	remaining, err := products.FindAll(ctx, catalog.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, pixel.ID, remaining[0].ID)

	exists, err := brands.ExistsByID(ctx, fx.brand.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, brands.Delete(ctx, fx.brand.ID), shared.ErrNotFound)
}

func TestGormCategoryRepository_DeleteCascadesProductsAndDependents(t *testing.T) {
	db := setupTestDB(t)
	categories := NewGormCategoryRepository(db)
	ctx := context.Background()

	fx := seedCatalog(t, db, "Phones", "Samsung")
	product := seedProduct(t, db, fx, "Galaxy S24", "999.99")
	user := seedUser(t, db, "alice", false)

	_, err := NewGormCartRepository(db).AddOne(ctx, user.ID, product.ID)
	require.NoError(t, err)
	_, err = NewGormLikeRepository(db).Toggle(ctx, user.ID, product.ID)
	require.NoError(t, err)

	require.NoError(t, categories.Delete(ctx, fx.category.ID))

	var productCount, cartCount, likeCount int64
	require.NoError(t, db.Model(&models.ProductModel{}).Count(&productCount).Error)
	require.NoError(t, db.Model(&models.CartItemModel{}).Count(&cartCount).Error)
	require.NoError(t, db.Model(&models.ProductLikeModel{}).Count(&likeCount).Error)
	assert.Zero(t, productCount)
	assert.Zero(t, cartCount)
	assert.Zero(t, likeCount)
}

func TestGormCategoryRepository_FindAllOrdersByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Tablets", "Accessories", "Phones"} {
		c, err := catalog.NewCategory(name)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))
	}

	got, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Accessories", got[0].Name)
	assert.Equal(t, "Phones", got[1].Name)
	assert.Equal(t, "Tablets", got[2].Name)
}
