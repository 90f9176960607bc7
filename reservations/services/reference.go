package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FormatReservationNumber renders the sortable, human-readable reservation
// number from a sequence value, e.g. RSV-000042. The sequence is read inside
// the creating transaction; the unique index on the column is the final
// arbiter under concurrency, with retry on violation (see booking service).
func FormatReservationNumber(sequence int64, padding int) string {
	return fmt.Sprintf("RSV-%0*d", padding, sequence)
}

// NewReferenceCode produces the short public code a guest quotes to look up
// their own reservation, e.g. REF-9F2C41AB. Distinct from the reservation
// number and random, so codes are not guessable from one another.
func NewReferenceCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("REF-%s", raw[:8])
}
