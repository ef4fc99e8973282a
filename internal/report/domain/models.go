package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidRange = errors.New("invalid_report_range")

// TotalsRow aggregates the closed records inside a date range.
type TotalsRow struct {
	ClosedCount  int64
	Revenue      int64
	TotalMinutes int64
}

// TypeTotalRow groups closed records by vehicle type.
type TypeTotalRow struct {
	VehicleTypeName string
	ClosedCount     int64
	Revenue         int64
}

// ExitRow is one closed record's exit moment and final charge. Day
// bucketing happens in the service so the grouping is identical across
// database drivers.
type ExitRow struct {
	ExitedAt    time.Time
	FinalAmount int64
}

type Repository interface {
	AggregateTotals(ctx context.Context, db *gorm.DB, from, to time.Time) (*TotalsRow, error)
	AggregateByType(ctx context.Context, db *gorm.DB, from, to time.Time) ([]TypeTotalRow, error)
	ListClosedExits(ctx context.Context, db *gorm.DB, from, to time.Time) ([]ExitRow, error)
	CountOpen(ctx context.Context, db *gorm.DB) (int64, error)
}

type Request struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type TypeTotal struct {
	VehicleType string `json:"vehicle_type"`
	ClosedCount int64  `json:"closed_count"`
	Revenue     int64  `json:"revenue"`
}

type DayTotal struct {
	Day         string `json:"day"`
	ClosedCount int64  `json:"closed_count"`
	Revenue     int64  `json:"revenue"`
}

type Response struct {
	From           string      `json:"from"`
	To             string      `json:"to"`
	ClosedCount    int64       `json:"closed_count"`
	OpenCount      int64       `json:"open_count"`
	Revenue        int64       `json:"revenue"`
	AverageMinutes int64       `json:"average_minutes"`
	ByVehicleType  []TypeTotal `json:"by_vehicle_type"`
	ByDay          []DayTotal  `json:"by_day"`
}
