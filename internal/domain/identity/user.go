package identity

import (
	"net/mail"
	"strings"
	"time"

	"github.com/crmdesk/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the access role of a dashboard user
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleSalesRep Role = "sales_rep"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSalesRep:
		return true
	}
	return false
}

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

const bcryptCost = 12

// User is an account that owns CRM data
type User struct {
	shared.BaseEntity
	Email             string
	PasswordHash      string
	FullName          string
	Phone             string
	AvatarURL         string
	Role              Role
	PasswordChangedAt *time.Time
	LastLoginAt       *time.Time
}

// NewUser creates a user with a hashed password and the sales_rep role
func NewUser(email, password, fullName string) (*User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	fullName = strings.TrimSpace(fullName)
	if len(fullName) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
	}

	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		FullName:   fullName,
		Role:       RoleSalesRep,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	now := time.Now()
	u.PasswordHash = string(hash)
	u.PasswordChangedAt = &now
	u.UpdatedAt = now
	return nil
}

// ChangePassword checks the confirmation matches before setting the new password
func (u *User) ChangePassword(newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return shared.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match")
	}
	return u.SetPassword(newPassword)
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateProfile changes the editable profile fields; nil leaves a field unchanged
func (u *User) UpdateProfile(fullName, phone, avatarURL *string) error {
	if fullName != nil {
		name := strings.TrimSpace(*fullName)
		if len(name) > 200 {
			return shared.NewDomainError("INVALID_NAME", "Full name cannot exceed 200 characters")
		}
		u.FullName = name
	}
	if phone != nil {
		u.Phone = strings.TrimSpace(*phone)
	}
	if avatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*avatarURL)
	}
	u.Touch()
	return nil
}

// SetRole assigns a role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}
	u.Role = role
	u.Touch()
	return nil
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
