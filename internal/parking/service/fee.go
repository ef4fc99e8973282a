package service

import (
	"time"

	tariffdomain "github.com/parkwiselabs/parkwise/internal/tariff/domain"
)

// elapsedMinutes converts a parking duration to billable minutes.
// Fractions always round up: one second past a minute boundary counts
// as the next full minute.
func elapsedMinutes(enteredAt, exitedAt time.Time) int64 {
	seconds := int64(exitedAt.Sub(enteredAt) / time.Second)
	if seconds <= 0 {
		return 0
	}
	return ceilDiv(seconds, 60)
}

// calculateCharge converts billable minutes to an amount in the minor
// currency unit. Every mode except PER_MINUTE bills at least one block,
// so a zero-minute stay is still charged.
func calculateCharge(mode tariffdomain.BillingMode, unitPrice, minutes int64) int64 {
	if unitPrice <= 0 || minutes < 0 {
		return 0
	}

	switch mode {
	case tariffdomain.PerMinute:
		return minutes * unitPrice
	case tariffdomain.PerHour:
		return atLeastOne(ceilDiv(minutes, 60)) * unitPrice
	case tariffdomain.PerDay:
		return atLeastOne(ceilDiv(minutes, 1440)) * unitPrice
	case tariffdomain.Fractional:
		// First hour is a flat full charge, every further 30-minute
		// block (rounded up) costs half the unit price.
		if minutes <= 60 {
			return unitPrice
		}
		return unitPrice + ceilDiv(minutes-60, 30)*(unitPrice/2)
	default:
		return 0
	}
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func atLeastOne(v int64) int64 {
	if v < 1 {
		return 1
	}
	return v
}
