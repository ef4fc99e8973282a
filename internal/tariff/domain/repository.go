package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, tariff *Tariff) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Tariff, error)
	// FindActiveByVehicleType returns the single active tariff for a
	// vehicle type, or nil when none is configured.
	FindActiveByVehicleType(ctx context.Context, db *gorm.DB, vehicleTypeID snowflake.ID) (*Tariff, error)
	// DeactivateActive retires the currently active tariff for a vehicle
	// type, stamping its end date.
	DeactivateActive(ctx context.Context, db *gorm.DB, vehicleTypeID snowflake.ID, endDate time.Time) error
	Update(ctx context.Context, db *gorm.DB, tariff *Tariff) error
	ListWithTypeNames(ctx context.Context, db *gorm.DB) ([]Row, error)
}
