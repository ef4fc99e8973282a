package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.VehicleType, error) {
	var vt domain.VehicleType
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description, category FROM vehicle_types WHERE id = ?`,
		id,
	).Scan(&vt).Error
	if err != nil {
		return nil, err
	}
	if vt.ID == 0 {
		return nil, nil
	}
	return &vt, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, name string) (*domain.VehicleType, error) {
	var vt domain.VehicleType
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description, category FROM vehicle_types WHERE name = ?`,
		name,
	).Scan(&vt).Error
	if err != nil {
		return nil, err
	}
	if vt.ID == 0 {
		return nil, nil
	}
	return &vt, nil
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.VehicleType, error) {
	var items []domain.VehicleType
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description, category FROM vehicle_types ORDER BY id`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, vt *domain.VehicleType) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO vehicle_types (id, name, description, category) VALUES (?, ?, ?, ?)`,
		vt.ID,
		vt.Name,
		vt.Description,
		vt.Category,
	).Error
}
