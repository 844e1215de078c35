package models

import (
	"time"

	"github.com/crmdesk/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email             string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash      string        `gorm:"type:varchar(255);not null"`
	FullName          string        `gorm:"type:varchar(200)"`
	Phone             string        `gorm:"type:varchar(50)"`
	AvatarURL         string        `gorm:"type:varchar(500)"`
	Role              identity.Role `gorm:"type:varchar(20);not null;default:'sales_rep'"`
	PasswordChangedAt *time.Time
	LastLoginAt       *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:        m.BaseModel.ToDomain(),
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Phone:             m.Phone,
		AvatarURL:         m.AvatarURL,
		Role:              m.Role,
		PasswordChangedAt: m.PasswordChangedAt,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FullName = u.FullName
	m.Phone = u.Phone
	m.AvatarURL = u.AvatarURL
	m.Role = u.Role
	m.PasswordChangedAt = u.PasswordChangedAt
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
