package services

import (
	"hotel-management-backend/db/models"
)

// allowedTransitions is the full lifecycle table. CHECKED_OUT and CANCELLED
// are terminal; CANCELLED is reachable from every non-terminal state.
var allowedTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.PendingReservationStatus:    {models.ConfirmedReservationStatus, models.CancelledReservationStatus},
	models.ConfirmedReservationStatus:  {models.CheckedInReservationStatus, models.CancelledReservationStatus},
	models.CheckedInReservationStatus:  {models.CheckedOutReservationStatus, models.CancelledReservationStatus},
	models.CheckedOutReservationStatus: {},
	models.CancelledReservationStatus:  {},
}

// ValidateStatusTransition checks a lifecycle edge. It is a pure validator;
// side effects of entering a state (releasing slots, flipping the resource
// status) belong to the orchestrator.
func ValidateStatusTransition(from, to models.ReservationStatus) error {
	allowed, known := allowedTransitions[from]
	if !known {
		return NewInvalidStatusTransition("unknown reservation status '%s'", from)
	}
	for _, next := range allowed {
		if next == to {
			return nil
		}
	}
	return NewInvalidStatusTransition("cannot move reservation from %s to %s", from, to)
}
