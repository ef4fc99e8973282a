package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Row, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Row, error)
	List(ctx context.Context, db *gorm.DB) ([]Row, error)
	SetActive(ctx context.Context, db *gorm.DB, id snowflake.ID, active bool) error

	CreateRole(ctx context.Context, db *gorm.DB, role *Role) error
	FindRoleByName(ctx context.Context, db *gorm.DB, name string) (*Role, error)
}
