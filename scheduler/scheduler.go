package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hotel-management-backend/config"
	"hotel-management-backend/reservations/repositories"
	"hotel-management-backend/reservations/services"
)

// Scheduler runs the recurring housekeeping jobs: flipping resources to
// BOOKED when a confirmed reservation's check-in day arrives, and flagging
// checked-in reservations whose checkout time has passed.
type Scheduler struct {
	cron            *cron.Cron
	bookingService  *services.BookingService
	reservationRepo repositories.ReservationRepository
}

func NewScheduler(
	bookingService *services.BookingService,
	reservationRepo repositories.ReservationRepository,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		bookingService:  bookingService,
		reservationRepo: reservationRepo,
	}
}

// Start registers the jobs and starts the cron loop. Non-blocking.
func (s *Scheduler) Start() error {
	// Every hour on the hour: activate check-ins that have become due.
	if _, err := s.cron.AddFunc("0 * * * *", s.runDueCheckIns); err != nil {
		return err
	}

	// 06:00 daily: report overdue checkouts for the front desk.
	if _, err := s.cron.AddFunc("0 6 * * *", s.runOverdueCheckouts); err != nil {
		return err
	}

	s.cron.Start()
	config.Logger.Info("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runDueCheckIns() {
	flipped, err := s.bookingService.ActivateDueCheckIns(context.Background())
	if err != nil {
		config.Logger.Error("Due check-in activation failed", zap.Error(err))
		return
	}
	if flipped > 0 {
		config.Logger.Info("Activated due check-ins", zap.Int("count", flipped))
	}
}

// runOverdueCheckouts logs checked-in reservations past their checkout time.
// Checkout itself stays a staff action: guests may have extended in person.
func (s *Scheduler) runOverdueCheckouts() {
	overdue, err := s.reservationRepo.ListOverdueCheckouts(time.Now())
	if err != nil {
		config.Logger.Error("Overdue checkout scan failed", zap.Error(err))
		return
	}
	for _, reservation := range overdue {
		config.Logger.Warn("Reservation past checkout time",
			zap.String("number", reservation.Number),
			zap.Time("check_out", reservation.CheckOut))
	}
	if len(overdue) > 0 {
		config.Logger.Info("Overdue checkout scan complete", zap.Int("count", len(overdue)))
	}
}
