package service

import (
	"context"
	"time"

	"github.com/parkwiselabs/parkwise/internal/clock"
	"github.com/parkwiselabs/parkwise/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("report.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// Summarize builds the operations report for an inclusive day range.
// Both bounds default to today when omitted.
func (s *Service) Summarize(ctx context.Context, req domain.Request) (*domain.Response, error) {
	today := s.clock.Now(ctx).Truncate(24 * time.Hour)

	from, err := parseDay(req.From, today)
	if err != nil {
		return nil, domain.ErrInvalidRange
	}
	to, err := parseDay(req.To, today)
	if err != nil {
		return nil, domain.ErrInvalidRange
	}
	if from.After(to) {
		return nil, domain.ErrInvalidRange
	}
	bound := to.AddDate(0, 0, 1)

	totals, err := s.repo.AggregateTotals(ctx, s.db, from, bound)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.AggregateByType(ctx, s.db, from, bound)
	if err != nil {
		return nil, err
	}
	exits, err := s.repo.ListClosedExits(ctx, s.db, from, bound)
	if err != nil {
		return nil, err
	}
	openCount, err := s.repo.CountOpen(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := &domain.Response{
		From:          from.Format(dayLayout),
		To:            to.Format(dayLayout),
		ClosedCount:   totals.ClosedCount,
		OpenCount:     openCount,
		Revenue:       totals.Revenue,
		ByVehicleType: make([]domain.TypeTotal, 0, len(byType)),
		ByDay:         bucketByDay(exits),
	}
	if totals.ClosedCount > 0 {
		resp.AverageMinutes = totals.TotalMinutes / totals.ClosedCount
	}
	for _, row := range byType {
		resp.ByVehicleType = append(resp.ByVehicleType, domain.TypeTotal{
			VehicleType: row.VehicleTypeName,
			ClosedCount: row.ClosedCount,
			Revenue:     row.Revenue,
		})
	}
	return resp, nil
}

func parseDay(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.ParseInLocation(dayLayout, value, time.UTC)
}

// bucketByDay groups exits per calendar day in Go so sqlite and
// postgres report identically.
func bucketByDay(exits []domain.ExitRow) []domain.DayTotal {
	totals := make([]domain.DayTotal, 0)
	index := make(map[string]int)
	for _, e := range exits {
		day := e.ExitedAt.UTC().Format(dayLayout)
		i, ok := index[day]
		if !ok {
			i = len(totals)
			index[day] = i
			totals = append(totals, domain.DayTotal{Day: day})
		}
		totals[i].ClosedCount++
		totals[i].Revenue += e.FinalAmount
	}
	return totals
}
