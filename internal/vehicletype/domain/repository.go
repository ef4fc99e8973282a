package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*VehicleType, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*VehicleType, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]VehicleType, error)
	Create(ctx context.Context, db *gorm.DB, vt *VehicleType) error
}
