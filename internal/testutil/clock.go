package testutil

import (
	"context"
	"time"
)

// FixedClock always reports the same instant. Tests advance it by
// mutating At between calls.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now(context.Context) time.Time {
	return c.At
}
