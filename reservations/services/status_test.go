package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel-management-backend/db/models"
)

func TestValidateStatusTransition(t *testing.T) {
	allStatuses := []models.ReservationStatus{
		models.PendingReservationStatus,
		models.ConfirmedReservationStatus,
		models.CheckedInReservationStatus,
		models.CheckedOutReservationStatus,
		models.CancelledReservationStatus,
	}

	allowed := map[models.ReservationStatus]map[models.ReservationStatus]bool{
		models.PendingReservationStatus: {
			models.ConfirmedReservationStatus: true,
			models.CancelledReservationStatus: true,
		},
		models.ConfirmedReservationStatus: {
			models.CheckedInReservationStatus: true,
			models.CancelledReservationStatus: true,
		},
		models.CheckedInReservationStatus: {
			models.CheckedOutReservationStatus: true,
			models.CancelledReservationStatus:  true,
		},
		models.CheckedOutReservationStatus: {},
		models.CancelledReservationStatus:  {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			from, to := from, to
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				err := ValidateStatusTransition(from, to)
				if allowed[from][to] {
					assert.NoError(t, err)
				} else {
					assert.Error(t, err)
					assert.Equal(t, CodeInvalidStatusTransition, CodeOf(err))
				}
			})
		}
	}
}

func TestValidateStatusTransitionUnknownStatus(t *testing.T) {
	err := ValidateStatusTransition(models.ReservationStatus("ARCHIVED"), models.ConfirmedReservationStatus)
	assert.Error(t, err)
	assert.Equal(t, CodeInvalidStatusTransition, CodeOf(err))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, models.CheckedOutReservationStatus.IsTerminal())
	assert.True(t, models.CancelledReservationStatus.IsTerminal())
	assert.False(t, models.PendingReservationStatus.IsTerminal())
	assert.False(t, models.ConfirmedReservationStatus.IsTerminal())
	assert.False(t, models.CheckedInReservationStatus.IsTerminal())
}
