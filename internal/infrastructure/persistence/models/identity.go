package models

import (
	"time"

	"github.com/fliamecomm/storefront/internal/domain/identity"
)

// UserModel is the persistence model for the User aggregate.
type UserModel struct {
	BaseModel
	Username     string     `gorm:"type:varchar(150);not null"`
	Email        string     `gorm:"type:varchar(254);not null;default:''"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	IsStaff      bool       `gorm:"not null;default:false"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.aggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		IsStaff:           m.IsStaff,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Username = u.Username
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.IsStaff = u.IsStaff
	m.IsActive = u.IsActive
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
