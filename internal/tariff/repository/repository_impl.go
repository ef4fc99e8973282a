package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/tariff/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, tariff *domain.Tariff) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tariffs (id, vehicle_type_id, name, billing_mode, unit_price, active, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tariff.ID,
		tariff.VehicleTypeID,
		tariff.Name,
		tariff.BillingMode,
		tariff.UnitPrice,
		tariff.Active,
		tariff.StartDate,
		tariff.EndDate,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Tariff, error) {
	var t domain.Tariff
	err := db.WithContext(ctx).Raw(
		`SELECT id, vehicle_type_id, name, billing_mode, unit_price, active, start_date, end_date
		 FROM tariffs WHERE id = ?`,
		id,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) FindActiveByVehicleType(ctx context.Context, db *gorm.DB, vehicleTypeID snowflake.ID) (*domain.Tariff, error) {
	var t domain.Tariff
	err := db.WithContext(ctx).Raw(
		`SELECT id, vehicle_type_id, name, billing_mode, unit_price, active, start_date, end_date
		 FROM tariffs WHERE vehicle_type_id = ? AND active = ? LIMIT 1`,
		vehicleTypeID,
		true,
	).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, nil
	}
	return &t, nil
}

func (r *repo) DeactivateActive(ctx context.Context, db *gorm.DB, vehicleTypeID snowflake.ID, endDate time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tariffs SET active = ?, end_date = ? WHERE vehicle_type_id = ? AND active = ?`,
		false,
		endDate,
		vehicleTypeID,
		true,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, tariff *domain.Tariff) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tariffs SET name = ?, billing_mode = ?, unit_price = ?, active = ?, end_date = ? WHERE id = ?`,
		tariff.Name,
		tariff.BillingMode,
		tariff.UnitPrice,
		tariff.Active,
		tariff.EndDate,
		tariff.ID,
	).Error
}

func (r *repo) ListWithTypeNames(ctx context.Context, db *gorm.DB) ([]domain.Row, error) {
	var rows []domain.Row
	err := db.WithContext(ctx).Raw(
		`SELECT t.id, t.vehicle_type_id, t.name, t.billing_mode, t.unit_price, t.active, t.start_date, t.end_date,
		        tv.name AS vehicle_type_name
		 FROM tariffs t
		 JOIN vehicle_types tv ON tv.id = t.vehicle_type_id
		 ORDER BY t.active DESC, tv.name`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
