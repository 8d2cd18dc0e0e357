package models

import (
	"github.com/fliamecomm/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category aggregate.
type CategoryModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
}

// CategoryModelFromDomain creates a new persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// BrandModel is the persistence model for the Brand aggregate.
type BrandModel struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the persistence model to a domain Brand
func (m *BrandModel) ToDomain() *catalog.Brand {
	return &catalog.Brand{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
	}
}

// FromDomain populates the persistence model from a domain Brand
func (m *BrandModel) FromDomain(b *catalog.Brand) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Name = b.Name
}

// BrandModelFromDomain creates a new persistence model from a domain Brand
func BrandModelFromDomain(b *catalog.Brand) *BrandModel {
	m := &BrandModel{}
	m.FromDomain(b)
	return m
}

// ProductModel is the persistence model for the Product aggregate.
// Brand and Category are belongs-to associations with cascading deletes.
type ProductModel struct {
	BaseModel
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	BrandID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	RAM         string          `gorm:"column:ram;type:varchar(50);not null;default:''"`
	Storage     string          `gorm:"type:varchar(50);not null;default:''"`
	Battery     string          `gorm:"type:varchar(50);not null;default:''"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Image       string          `gorm:"type:varchar(255);not null;default:''"`
	Rating      float64         `gorm:"not null;default:4.0"`

	Brand    *BrandModel    `gorm:"foreignKey:BrandID;constraint:OnDelete:CASCADE"`
	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
// Brand and category names are filled when the associations were preloaded.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		BrandID:           m.BrandID,
		CategoryID:        m.CategoryID,
		RAM:               m.RAM,
		Storage:           m.Storage,
		Battery:           m.Battery,
		Price:             m.Price,
		Image:             m.Image,
		Rating:            m.Rating,
	}
	if m.Brand != nil {
		p.BrandName = m.Brand.Name
	}
	if m.Category != nil {
		p.CategoryName = m.Category.Name
	}
	return p
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.BrandID = p.BrandID
	m.CategoryID = p.CategoryID
	m.RAM = p.RAM
	m.Storage = p.Storage
	m.Battery = p.Battery
	m.Price = p.Price
	m.Image = p.Image
	m.Rating = p.Rating
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
