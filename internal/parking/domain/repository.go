package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertRecord(ctx context.Context, db *gorm.DB, record *ParkingRecord) error
	// FindOpenByPlate returns the single OPEN record for a plate, or nil.
	FindOpenByPlate(ctx context.Context, db *gorm.DB, plate string) (*ParkingRecord, error)
	LookupOpenByPlate(ctx context.Context, db *gorm.DB, plate string) (*ExitLookupRow, error)
	LookupOpenByTicketCode(ctx context.Context, db *gorm.DB, code string) (*ExitLookupRow, error)
	// CloseRecord finalizes an OPEN record, reporting whether the
	// transition actually happened (false when already CLOSED).
	CloseRecord(ctx context.Context, db *gorm.DB, record *ParkingRecord) (bool, error)
	InsertTicket(ctx context.Context, db *gorm.DB, ticket *Ticket) error
	FindTicketByRecord(ctx context.Context, db *gorm.DB, recordID snowflake.ID) (*Ticket, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]RecordRow, error)
}
