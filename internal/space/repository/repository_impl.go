package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/space/domain"
	vehicletypedomain "github.com/parkwiselabs/parkwise/internal/vehicletype/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, space *domain.Space) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO spaces (id, code, category, available) VALUES (?, ?, ?, ?)`,
		space.ID,
		space.Code,
		space.Category,
		space.Available,
	).Error
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Space, error) {
	var s domain.Space
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, category, available FROM spaces WHERE code = ?`,
		code,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) FindLowestAvailable(ctx context.Context, db *gorm.DB, category vehicletypedomain.Category) (*domain.Space, error) {
	var s domain.Space
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, category, available FROM spaces
		 WHERE category = ? AND available = ?
		 ORDER BY code LIMIT 1`,
		category,
		true,
	).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *repo) MarkOccupied(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE spaces SET available = ? WHERE id = ? AND available = ?`,
		false,
		id,
		true,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repo) MarkAvailable(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE spaces SET available = ? WHERE id = ?`,
		true,
		id,
	).Error
}

func (r *repo) ListWithOccupants(ctx context.Context, db *gorm.DB) ([]domain.OccupancyRow, error) {
	var rows []domain.OccupancyRow
	err := db.WithContext(ctx).Raw(
		`SELECT s.id, s.code, s.category, s.available,
		        r.plate AS occupant_plate, r.id AS record_id
		 FROM spaces s
		 LEFT JOIN parking_records r ON r.space_id = s.id AND r.status = 'OPEN'
		 ORDER BY s.code`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) Summarize(ctx context.Context, db *gorm.DB) ([]domain.CategorySummary, error) {
	var rows []domain.CategorySummary
	err := db.WithContext(ctx).Raw(
		`SELECT category,
		        COUNT(*) AS total,
		        SUM(CASE WHEN available THEN 1 ELSE 0 END) AS free,
		        SUM(CASE WHEN available THEN 0 ELSE 1 END) AS occupied
		 FROM spaces
		 GROUP BY category
		 ORDER BY category`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CountOccupied(ctx context.Context, db *gorm.DB, category vehicletypedomain.Category) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM spaces WHERE category = ? AND available = ?`,
		category,
		false,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
