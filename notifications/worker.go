package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/reservations/services"
)

// HandleReservationBookedTask delivers the confirmation email for an online
// booking. Returning an error lets asynq retry with backoff.
func HandleReservationBookedTask(ctx context.Context, t *asynq.Task) error {
	var event services.ResourceBookedEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		// Malformed payloads never succeed on retry.
		return fmt.Errorf("unmarshal booked event: %w: %w", err, asynq.SkipRetry)
	}

	if event.GuestEmail == "" {
		config.Logger.Info("Booked notification skipped: guest has no email",
			zap.String("reservation_number", event.ReservationNumber))
		return nil
	}

	return SendBookingConfirmationEmail(
		event.GuestEmail,
		event.GuestName,
		event.ReservationNumber,
		event.ReferenceCode,
		event.ResourceName,
		event.CheckIn.Format("2006-01-02"),
		event.CheckOut.Format("2006-01-02"),
		event.Total.StringFixed(2),
	)
}

// StartWorker runs the asynq server that processes notification tasks.
// Blocks, so callers run it in a goroutine.
func StartWorker(redisOpt asynq.RedisClientOpt) {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReservationBooked, HandleReservationBookedTask)

	if err := srv.Run(mux); err != nil {
		config.Logger.Fatal("Notification worker failed", zap.Error(err))
	}
}
