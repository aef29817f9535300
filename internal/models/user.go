package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Unique among live rows only; a soft-deleted account frees its email.
	Email    string `gorm:"uniqueIndex:udx_users_live_email,where:deleted_at IS NULL;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `json:"full_name"`
	Role     Role   `gorm:"type:varchar(20);default:'USER'" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Sanitized returns a copy safe to hand to handlers and encode in
// responses; the password hash never travels past the repository layer.
func (u User) Sanitized() *User {
	u.Password = ""
	return &u
}
