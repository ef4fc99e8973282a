// Package clock abstracts wall-clock time so entry/exit timestamps and
// fee math are testable with fixed instants.
package clock

import (
	"context"
	"time"
)

type Clock interface {
	Now(ctx context.Context) time.Time
}
