package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes, ordered roughly by the amount of access they grant
const (
	RoleUser       = "USER"
	RoleSupervisor = "SUPERVISOR"
	RoleManager    = "MANAGER"
	RoleAdmin      = "ADMIN"
)

// ValidRole reports whether code is one of the known role codes.
func ValidRole(code string) bool {
	switch code {
	case RoleUser, RoleSupervisor, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// User represents an authenticated actor. A user is also the customer of its orders.
type User struct {
	BaseModel
	Username string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role     string `gorm:"type:varchar(20);not null;default:'USER'" json:"role" validate:"required,oneof=USER SUPERVISOR MANAGER ADMIN"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Relasi
	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
