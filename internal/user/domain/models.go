// Package domain contains operator/administrator accounts and roles.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleAdministrator = "Administrator"
	RoleOperator      = "Operator"
)

type Role struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	Name        string       `gorm:"type:text;not null;uniqueIndex"`
	Description *string      `gorm:"type:text"`
}

// TableName sets the database table name.
func (Role) TableName() string { return "roles" }

type User struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	Name         string       `gorm:"type:text;not null"`
	Email        string       `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string       `gorm:"type:text;not null"`
	RoleID       snowflake.ID `gorm:"not null"`
	Active       bool         `gorm:"not null;default:true"`
	CreatedAt    time.Time    `gorm:"not null"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidRole        = errors.New("invalid_role")
	ErrEmailTaken         = errors.New("email_taken")
	ErrNotFound           = errors.New("user_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

type CreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type SetActiveRequest struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Row is a user joined with its role name.
type Row struct {
	User
	RoleName string
}
