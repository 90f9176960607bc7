package notifications

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"hotel-management-backend/reservations/services"
)

// TypeReservationBooked is the asynq task type for booking confirmations.
const TypeReservationBooked = "reservation:booked"

// NewReservationBookedTask wraps a booked event as an asynq task payload.
func NewReservationBookedTask(event services.ResourceBookedEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReservationBooked, payload, asynq.MaxRetry(5)), nil
}
