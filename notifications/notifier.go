package notifications

import (
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/reservations/services"
)

// AsynqNotifier queues booking-confirmation work instead of sending inline:
// a slow or failing SMTP server never delays the booking request.
type AsynqNotifier struct {
	client *asynq.Client
}

func NewAsynqNotifier(client *asynq.Client) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

// NotifyResourceBooked enqueues the confirmation task. Fire-and-forget:
// enqueue failures are logged, never propagated to the caller.
func (n *AsynqNotifier) NotifyResourceBooked(event services.ResourceBookedEvent) {
	task, err := NewReservationBookedTask(event)
	if err != nil {
		config.Logger.Error("Failed to build booked notification task",
			zap.String("reservation_number", event.ReservationNumber),
			zap.Error(err))
		return
	}

	info, err := n.client.Enqueue(task)
	if err != nil {
		config.Logger.Error("Failed to enqueue booked notification",
			zap.String("reservation_number", event.ReservationNumber),
			zap.Error(err))
		return
	}

	config.Logger.Info("Booked notification enqueued",
		zap.String("reservation_number", event.ReservationNumber),
		zap.String("task_id", info.ID))
}
