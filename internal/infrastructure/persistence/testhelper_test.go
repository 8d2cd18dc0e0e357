package persistence

import (
	"context"
	"testing"

	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteSchema mirrors migrations/ with SQLite types; foreign keys cascade the same way.
var sqliteSchema = []string{
	`CREATE TABLE categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE brands (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		brand_id TEXT NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		ram TEXT NOT NULL DEFAULT '',
		storage TEXT NOT NULL DEFAULT '',
		battery TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 4.0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		is_staff BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		last_login_at DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE UNIQUE INDEX idx_users_username_lower ON users(LOWER(username))`,
	`CREATE TABLE cart_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 1,
		added_at DATETIME NOT NULL,
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE product_likes (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, product_id)
	)`,
}

// setupTestDB opens an in-memory SQLite database with the storefront schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range sqliteSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type catalogFixture struct {
	category *catalog.Category
	brand    *catalog.Brand
}

func seedCatalog(t *testing.T, db *gorm.DB, categoryName, brandName string) catalogFixture {
	t.Helper()
	ctx := context.Background()

	category, err := catalog.NewCategory(categoryName)
	require.NoError(t, err)
	require.NoError(t, NewGormCategoryRepository(db).Save(ctx, category))

	brand, err := catalog.NewBrand(brandName)
	require.NoError(t, err)
	require.NoError(t, NewGormBrandRepository(db).Save(ctx, brand))

	return catalogFixture{category: category, brand: brand}
}

func seedProduct(t *testing.T, db *gorm.DB, fx catalogFixture, name, price string) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct(name, "", fx.brand.ID, fx.category.ID,
		catalog.ProductSpec{RAM: "8GB", Storage: "128GB", Battery: "4500mAh"},
		decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}

func seedUser(t *testing.T, db *gorm.DB, username string, staff bool) *identity.User {
	t.Helper()

	identity.BcryptCost = bcrypt.MinCost
	newUser := identity.NewUser
	if staff {
		newUser = identity.NewStaffUser
	}
	user, err := newUser(username, username+"@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, NewGormUserRepository(db).Create(context.Background(), user))
	return user
}
