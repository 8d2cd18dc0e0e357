// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free of
// ORM concerns.
//
// Structure:
//   - base.go: shared persistence fields (BaseModel)
//   - catalog.go: categories, brands and products
//   - identity.go: users
//   - shopping.go: cart lines and product likes
package models
