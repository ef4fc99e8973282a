package repository

import (
	"context"
	"time"

	"github.com/parkwiselabs/parkwise/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) AggregateTotals(ctx context.Context, db *gorm.DB, from, to time.Time) (*domain.TotalsRow, error) {
	var row domain.TotalsRow
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) AS closed_count,
		        COALESCE(SUM(final_amount), 0) AS revenue,
		        COALESCE(SUM(total_minutes), 0) AS total_minutes
		 FROM parking_records
		 WHERE status = 'CLOSED' AND exited_at >= ? AND exited_at < ?`,
		from,
		to,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repo) AggregateByType(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.TypeTotalRow, error) {
	var rows []domain.TypeTotalRow
	err := db.WithContext(ctx).Raw(
		`SELECT tv.name AS vehicle_type_name,
		        COUNT(*) AS closed_count,
		        COALESCE(SUM(r.final_amount), 0) AS revenue
		 FROM parking_records r
		 INNER JOIN vehicle_types tv ON tv.id = r.vehicle_type_id
		 WHERE r.status = 'CLOSED' AND r.exited_at >= ? AND r.exited_at < ?
		 GROUP BY tv.name
		 ORDER BY tv.name`,
		from,
		to,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListClosedExits(ctx context.Context, db *gorm.DB, from, to time.Time) ([]domain.ExitRow, error) {
	var rows []domain.ExitRow
	err := db.WithContext(ctx).Raw(
		`SELECT exited_at, final_amount
		 FROM parking_records
		 WHERE status = 'CLOSED' AND exited_at >= ? AND exited_at < ?
		 ORDER BY exited_at`,
		from,
		to,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CountOpen(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM parking_records WHERE status = 'OPEN'`,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
