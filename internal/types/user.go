package types

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Hash             string     `gorm:"not null" json:"-"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Role             string     `gorm:"not null" json:"role"`
	Name             string     `gorm:"not null" json:"name"`
	AccessLevel      string     `gorm:"not null;column:access_level" json:"access_level"`
	AccessKey        string     `gorm:"column:access_key" json:"-"`
	ApprovedByUserID *uuid.UUID `gorm:"type:uuid;column:approved_by_user_id" json:"approved_by_user_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// SlimUser is the redacted view returned after sign-in.
type SlimUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AccessLevel string    `json:"access_level"`
}

func (u *User) Slim() *SlimUser {
	return &SlimUser{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		AccessLevel: u.AccessLevel,
	}
}

// UserInput creates a new user; Admin-only.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
