package services

import (
	"time"

	"hotel-management-backend/db/models"
)

const (
	dateOnlyLayout = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// ParseCheckIn parses a check-in value. Date-only strings normalize to the
// start of the day so that a naive "2025-01-01" means midnight, not a
// zero-length stay.
func ParseCheckIn(value string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, NewInvalidDate("check-in date '%s' is not a valid date", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// ParseCheckOut parses a check-out value. Date-only strings normalize to the
// end of the day for the same reason.
func ParseCheckOut(value string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnlyLayout, value)
	if err != nil {
		return time.Time{}, NewInvalidDate("check-out date '%s' is not a valid date", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location()), nil
}

// ValidateStayInterval checks a parsed interval against the business rules:
// checkout strictly after checkin, no past check-in relative to now, and the
// resource type's minimum stay. Parse failures are a distinct error kind from
// rule violations; both surface as INVALID_DATE with different messages.
func ValidateStayInterval(checkIn, checkOut, now time.Time, resourceType models.ResourceType, minStayRoom, minStayHall time.Duration) error {
	if !checkOut.After(checkIn) {
		return NewInvalidDate("check-out (%s) must be after check-in (%s)",
			checkOut.Format(dateTimeLayout), checkIn.Format(dateTimeLayout))
	}

	// Compare on calendar days so a same-day walk-in at 14:00 is not rejected
	// because midnight has passed.
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if checkIn.Before(startOfToday) {
		return NewInvalidDate("check-in (%s) cannot be in the past", checkIn.Format(dateTimeLayout))
	}

	minStay := minStayRoom
	if resourceType == models.HallResourceType {
		minStay = minStayHall
	}
	if checkOut.Sub(checkIn) < minStay {
		return NewInvalidDate("stay must be at least %s for a %s",
			minStay.String(), string(resourceType))
	}

	return nil
}

// StayDates returns the calendar days covered by [checkIn, checkOut), one per
// reservation slot. A stay shorter than a day still occupies one day.
func StayDates(checkIn, checkOut time.Time) []time.Time {
	start := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	if checkOut.Equal(end) {
		// Checkout exactly at midnight does not occupy the checkout day.
		end = end.AddDate(0, 0, -1)
	}
	if end.Before(start) {
		end = start
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
