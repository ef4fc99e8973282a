package domain

import (
	"context"
	"time"
)

type Service interface {
	Enter(ctx context.Context, req EnterRequest) (*EnterResponse, error)
	Exit(ctx context.Context, req ExitRequest) (*ExitResponse, error)
	List(ctx context.Context, req ListRequest) ([]RecordResponse, error)
}

type EnterRequest struct {
	Plate         string `json:"plate"`
	VehicleTypeID string `json:"vehicle_type_id"`
	// ActorID is the authenticated operator, stamped as entry user.
	ActorID string `json:"-"`
}

type ExitRequest struct {
	Plate      string `json:"plate"`
	TicketCode string `json:"ticket_code"`
	Discount   int64  `json:"discount"`
	ActorID    string `json:"-"`
}

type ListRequest struct {
	Status string
	// Date is an entry-date filter in YYYY-MM-DD, empty for all days.
	Date string
}

type RecordResponse struct {
	ID           string       `json:"id"`
	Plate        string       `json:"plate"`
	VehicleType  string       `json:"vehicle_type,omitempty"`
	SpaceCode    string       `json:"space_code,omitempty"`
	EnteredAt    time.Time    `json:"entered_at"`
	ExitedAt     *time.Time   `json:"exited_at,omitempty"`
	TotalMinutes *int64       `json:"total_minutes,omitempty"`
	BaseAmount   *int64       `json:"base_amount,omitempty"`
	Discount     int64        `json:"discount"`
	FinalAmount  *int64       `json:"final_amount,omitempty"`
	Status       RecordStatus `json:"status"`
	EntryUser    *string      `json:"entry_user,omitempty"`
	ExitUser     *string      `json:"exit_user,omitempty"`
	TicketCode   *string      `json:"ticket_code,omitempty"`
}

type SpaceResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

type TicketResponse struct {
	ID       string    `json:"id"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}

type EnterResponse struct {
	Record RecordResponse `json:"record"`
	Space  SpaceResponse  `json:"space"`
	Ticket TicketResponse `json:"ticket"`
}

// ExitResponse is the receipt breakdown handed to the presentation layer.
type ExitResponse struct {
	Record       RecordResponse `json:"record"`
	TotalMinutes int64          `json:"total_minutes"`
	BaseAmount   int64          `json:"base_amount"`
	FinalAmount  int64          `json:"final_amount"`
	VehicleType  string         `json:"vehicle_type"`
}
