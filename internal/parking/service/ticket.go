package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

const ticketCodePrefix = "TK-"

// newTicketCode builds an opaque, URL/QR-safe ticket code. ULIDs encode
// the issuance instant plus 80 bits of entropy, so codes are unique in
// practice; the tickets.code unique index catches the residue.
func newTicketCode(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate ticket code: %w", err)
	}
	return ticketCodePrefix + id.String(), nil
}
