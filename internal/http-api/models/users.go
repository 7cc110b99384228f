package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values, lowest to highest privilege.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName *string   `gorm:"size:150" json:"first_name,omitempty"`
	LastName  *string   `gorm:"size:150" json:"last_name,omitempty"`
	Bio       *string   `gorm:"type:text" json:"bio,omitempty"`
	Role      string    `gorm:"default:'user';not null;size:50" json:"role"`
	Password  string    `gorm:"column:password_hash" json:"-"` // optional, admin-set accounts only
	Active    bool      `gorm:"default:true;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
