package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReservationNumber(t *testing.T) {
	assert.Equal(t, "RSV-000001", FormatReservationNumber(1, 6))
	assert.Equal(t, "RSV-000042", FormatReservationNumber(42, 6))
	assert.Equal(t, "RSV-123456", FormatReservationNumber(123456, 6))
	// Sequences beyond the padding width still render in full.
	assert.Equal(t, "RSV-1234567", FormatReservationNumber(1234567, 6))
}

func TestFormatReservationNumberIsSortable(t *testing.T) {
	a := FormatReservationNumber(9, 6)
	b := FormatReservationNumber(10, 6)
	assert.Less(t, a, b)
}

func TestNewReferenceCode(t *testing.T) {
	pattern := regexp.MustCompile(`^REF-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewReferenceCode()
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// Random codes must not collide in a small sample.
	assert.Greater(t, len(seen), 95)
}
