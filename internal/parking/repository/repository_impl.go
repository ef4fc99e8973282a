package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/parkwiselabs/parkwise/internal/parking/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const recordColumns = `r.id, r.plate, r.vehicle_type_id, r.space_id, r.tariff_id,
	r.entered_at, r.exited_at, r.total_minutes, r.base_amount, r.discount,
	r.final_amount, r.status, r.entry_user_id, r.exit_user_id`

func (r *repo) InsertRecord(ctx context.Context, db *gorm.DB, record *domain.ParkingRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO parking_records
		 (id, plate, vehicle_type_id, space_id, tariff_id, entered_at, discount, status, entry_user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Plate,
		record.VehicleTypeID,
		record.SpaceID,
		record.TariffID,
		record.EnteredAt,
		record.Discount,
		record.Status,
		record.EntryUserID,
	).Error
}

func (r *repo) FindOpenByPlate(ctx context.Context, db *gorm.DB, plate string) (*domain.ParkingRecord, error) {
	var rec domain.ParkingRecord
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+` FROM parking_records r WHERE r.plate = ? AND r.status = 'OPEN'`,
		plate,
	).Scan(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == 0 {
		return nil, nil
	}
	return &rec, nil
}

func (r *repo) LookupOpenByPlate(ctx context.Context, db *gorm.DB, plate string) (*domain.ExitLookupRow, error) {
	var row domain.ExitLookupRow
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+`, t.billing_mode, t.unit_price, tv.name AS vehicle_type_name, e.category AS space_category
		 FROM parking_records r
		 LEFT JOIN tariffs t ON t.id = r.tariff_id
		 LEFT JOIN vehicle_types tv ON tv.id = r.vehicle_type_id
		 LEFT JOIN spaces e ON e.id = r.space_id
		 WHERE r.plate = ? AND r.status = 'OPEN'`,
		plate,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) LookupOpenByTicketCode(ctx context.Context, db *gorm.DB, code string) (*domain.ExitLookupRow, error) {
	var row domain.ExitLookupRow
	err := db.WithContext(ctx).Raw(
		`SELECT `+recordColumns+`, t.billing_mode, t.unit_price, tv.name AS vehicle_type_name, e.category AS space_category
		 FROM parking_records r
		 LEFT JOIN tariffs t ON t.id = r.tariff_id
		 LEFT JOIN vehicle_types tv ON tv.id = r.vehicle_type_id
		 LEFT JOIN spaces e ON e.id = r.space_id
		 INNER JOIN tickets tk ON tk.parking_record_id = r.id
		 WHERE tk.code = ? AND r.status = 'OPEN'`,
		code,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repo) CloseRecord(ctx context.Context, db *gorm.DB, record *domain.ParkingRecord) (bool, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE parking_records SET
		 exited_at = ?, total_minutes = ?, base_amount = ?, discount = ?,
		 final_amount = ?, status = ?, exit_user_id = ?
		 WHERE id = ? AND status = 'OPEN'`,
		record.ExitedAt,
		record.TotalMinutes,
		record.BaseAmount,
		record.Discount,
		record.FinalAmount,
		record.Status,
		record.ExitUserID,
		record.ID,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repo) InsertTicket(ctx context.Context, db *gorm.DB, ticket *domain.Ticket) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tickets (id, parking_record_id, code, issued_at) VALUES (?, ?, ?, ?)`,
		ticket.ID,
		ticket.ParkingRecordID,
		ticket.Code,
		ticket.IssuedAt,
	).Error
}

func (r *repo) FindTicketByRecord(ctx context.Context, db *gorm.DB, recordID snowflake.ID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	err := db.WithContext(ctx).Raw(
		`SELECT id, parking_record_id, code, issued_at FROM tickets WHERE parking_record_id = ?`,
		recordID,
	).Scan(&ticket).Error
	if err != nil {
		return nil, err
	}
	if ticket.ID == 0 {
		return nil, nil
	}
	return &ticket, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.RecordRow, error) {
	stmt := db.WithContext(ctx).
		Table("parking_records AS r").
		Select(recordColumns + `, tv.name AS vehicle_type_name, e.code AS space_code,
			ue.name AS entry_user_name, us.name AS exit_user_name, tk.code AS ticket_code`).
		Joins("LEFT JOIN vehicle_types tv ON tv.id = r.vehicle_type_id").
		Joins("LEFT JOIN spaces e ON e.id = r.space_id").
		Joins("LEFT JOIN users ue ON ue.id = r.entry_user_id").
		Joins("LEFT JOIN users us ON us.id = r.exit_user_id").
		Joins("LEFT JOIN tickets tk ON tk.parking_record_id = r.id")

	if filter.Status != "" {
		stmt = stmt.Where("r.status = ?", filter.Status)
	}
	if !filter.Day.IsZero() {
		dayStart := filter.Day
		dayEnd := dayStart.AddDate(0, 0, 1)
		stmt = stmt.Where("r.entered_at >= ? AND r.entered_at < ?", dayStart, dayEnd)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var rows []domain.RecordRow
	err := stmt.Order("r.entered_at DESC").Limit(limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
