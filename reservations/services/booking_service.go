package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hotel-management-backend/config"
	"hotel-management-backend/db"
	"hotel-management-backend/db/models"
	history_repositories "hotel-management-backend/history/repositories"
	"hotel-management-backend/reservations/repositories"
	resources_repositories "hotel-management-backend/resources/repositories"
)

// ResourceBookedEvent is emitted after a successful public-channel creation
// for the external notifier to deliver. Fire-and-forget: delivery failure
// never rolls back the reservation.
type ResourceBookedEvent struct {
	ReservationNumber string          `json:"reservation_number"`
	ReferenceCode     string          `json:"reference_code"`
	GuestName         string          `json:"guest_name"`
	GuestPhone        string          `json:"guest_phone"`
	GuestEmail        string          `json:"guest_email,omitempty"`
	ResourceName      string          `json:"resource_name"`
	ResourceCode      string          `json:"resource_code"`
	CheckIn           time.Time       `json:"check_in"`
	CheckOut          time.Time       `json:"check_out"`
	Total             decimal.Decimal `json:"total"`
}

// BookedNotifier hands a booked event to the external notification channel.
type BookedNotifier interface {
	NotifyResourceBooked(event ResourceBookedEvent)
}

// EventBroadcaster pushes reservation lifecycle events to live consumers
// (the dashboard websocket feed).
type EventBroadcaster interface {
	BroadcastReservationEvent(action string, reservation *models.Reservation)
}

// CacheInvalidator drops cached filtered-query results after a mutation.
type CacheInvalidator interface {
	InvalidateAsync(resourceType string)
}

// OccupantInput is the guest snapshot supplied with a create request.
type OccupantInput struct {
	FullName         string
	Phone            string
	Email            *string
	Address          *string
	IDDocumentType   *string
	IDDocumentNumber *string
	Classification   models.OccupantClassification
}

// CreateReservationInput is the strongly-typed create request. Dates arrive
// as raw strings so the interval validator owns their interpretation.
type CreateReservationInput struct {
	ResourceIDs   []uuid.UUID
	Occupant      OccupantInput
	CheckIn       string
	CheckOut      string
	GuestCount    int
	Discount      decimal.Decimal
	AdvancePaid   decimal.Decimal
	TaxApplicable bool
	TaxRate       *decimal.Decimal // nil uses the configured default
	Channel       models.BookingChannel
	ActorID       *string // nil for public-channel requests
	Note          *string
}

// UpdateReservationInput carries the optional fields of an update request.
// Nil means "leave unchanged".
type UpdateReservationInput struct {
	CheckIn    *string
	CheckOut   *string
	GuestCount *int
	Status     *models.ReservationStatus
	ResourceID *uuid.UUID
	Note       *string
	ActorID    *string
}

// ReservationWithHistory is the read model returned by Get.
type ReservationWithHistory struct {
	Reservation   *models.Reservation   `json:"reservation"`
	RecentHistory []models.HistoryEntry `json:"recent_history"`
}

// BookingService is the reservation orchestrator: it composes the interval
// validator, conflict detector, price calculator, identifier generator,
// status state machine and audit logger into transactional use cases.
type BookingService struct {
	txRunner        db.TxRunner
	reservationRepo repositories.ReservationRepository
	occupantRepo    repositories.OccupantRepository
	slotRepo        repositories.SlotRepository
	resourceRepo    resources_repositories.ResourceRepository
	historyRepo     history_repositories.HistoryRepository
	notifier        BookedNotifier
	broadcaster     EventBroadcaster
	cache           CacheInvalidator
	policy          config.BookingPolicy
	now             func() time.Time
}

func NewBookingService(
	txRunner db.TxRunner,
	reservationRepo repositories.ReservationRepository,
	occupantRepo repositories.OccupantRepository,
	slotRepo repositories.SlotRepository,
	resourceRepo resources_repositories.ResourceRepository,
	historyRepo history_repositories.HistoryRepository,
	notifier BookedNotifier,
	broadcaster EventBroadcaster,
	cache CacheInvalidator,
	policy config.BookingPolicy,
) *BookingService {
	return &BookingService{
		txRunner:        txRunner,
		reservationRepo: reservationRepo,
		occupantRepo:    occupantRepo,
		slotRepo:        slotRepo,
		resourceRepo:    resourceRepo,
		historyRepo:     historyRepo,
		notifier:        notifier,
		broadcaster:     broadcaster,
		cache:           cache,
		policy:          policy,
		now:             time.Now,
	}
}

// Create books one reservation per requested resource, all-or-nothing. If any
// resource conflicts or is under maintenance the whole request rolls back; no
// partial booking of a subset. Transient storage failures retry a bounded
// number of times; a detected date conflict never retries.
func (s *BookingService) Create(ctx context.Context, input CreateReservationInput) ([]*models.Reservation, error) {
	resourceIDs := dedupeUUIDs(input.ResourceIDs)
	if len(resourceIDs) == 0 {
		return nil, NewValidationError("at least one resource must be requested")
	}
	if input.Occupant.FullName == "" || input.Occupant.Phone == "" {
		return nil, NewValidationError("guest name and phone are required")
	}
	if input.GuestCount < 1 {
		input.GuestCount = 1
	}
	if input.Discount.IsNegative() {
		return nil, NewValidationError("discount cannot be negative")
	}
	if input.AdvancePaid.IsNegative() {
		return nil, NewValidationError("advance payment cannot be negative")
	}

	checkIn, err := ParseCheckIn(input.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := ParseCheckOut(input.CheckOut)
	if err != nil {
		return nil, err
	}

	taxRate := decimal.NewFromFloat(s.policy.DefaultTaxRate)
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}

	var created []*models.Reservation
	attempt := func() error {
		created = nil
		return s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
			return s.createInTx(tx, input, resourceIDs, checkIn, checkOut, taxRate, &created)
		})
	}

	err = attempt()
	for retries := 0; err != nil && isTransient(err) && retries < s.policy.CreateRetries; retries++ {
		config.Logger.Warn("Retrying reservation create after transient storage failure",
			zap.Int("attempt", retries+1),
			zap.Error(err))
		err = attempt()
	}
	if err != nil {
		return nil, err
	}

	s.afterCreate(input, created)
	return created, nil
}

func (s *BookingService) createInTx(
	tx *gorm.DB,
	input CreateReservationInput,
	resourceIDs []uuid.UUID,
	checkIn, checkOut time.Time,
	taxRate decimal.Decimal,
	out *[]*models.Reservation,
) error {
	now := s.now()

	// Lock every requested resource up front, in request order, before any
	// conflict check. Concurrent creates for the same resource serialize on
	// these row locks.
	resources := make([]*models.Resource, 0, len(resourceIDs))
	for _, id := range resourceIDs {
		resource, err := s.resourceRepo.GetByIDForUpdate(tx, id)
		if err != nil {
			return NewInternalError(fmt.Errorf("failed to load resource %s: %w", id, err))
		}
		if resource == nil {
			return NewNotFound("resource %s was not found", id)
		}
		if !resource.IsActive || resource.Status == models.MaintenanceResourceStatus {
			return NewResourceUnavailable("resource %s (%s) is under maintenance or inactive",
				resource.Code, resource.Name)
		}
		if err := ValidateStayInterval(checkIn, checkOut, now, resource.Type,
			s.policy.MinStayRoom, s.policy.MinStayHall); err != nil {
			return err
		}
		resources = append(resources, resource)
	}

	// Conflict detection inside the same transaction as the insert.
	for _, resource := range resources {
		existing, err := s.reservationRepo.FindOverlapping(tx, resource.ID, checkIn, checkOut)
		if err != nil {
			return NewInternalError(err)
		}
		if existing != nil {
			return NewDateConflict(
				"resource %s is already reserved from %s to %s (reservation %s)",
				resource.Code,
				existing.CheckIn.Format("2006-01-02"),
				existing.CheckOut.Format("2006-01-02"),
				existing.Number)
		}
	}

	occupant := &models.Occupant{
		FullName:         input.Occupant.FullName,
		Phone:            input.Occupant.Phone,
		Email:            input.Occupant.Email,
		Address:          input.Occupant.Address,
		IDDocumentType:   input.Occupant.IDDocumentType,
		IDDocumentNumber: input.Occupant.IDDocumentNumber,
		Classification:   input.Occupant.Classification,
		CreatedBy:        input.ActorID,
	}
	if occupant.Classification == "" {
		occupant.Classification = models.WalkInOccupant
	}
	if err := s.occupantRepo.Create(tx, occupant); err != nil {
		return NewInternalError(fmt.Errorf("failed to create occupant: %w", err))
	}

	sequence, err := s.reservationRepo.NextSequence(tx)
	if err != nil {
		return NewInternalError(err)
	}

	discountShares := SplitAmountEvenly(input.Discount, len(resources))
	advanceShares := SplitAmountEvenly(input.AdvancePaid, len(resources))

	// Staff bookings start CONFIRMED; public bookings stay PENDING until a
	// member of staff confirms them.
	initialStatus := models.ConfirmedReservationStatus
	if input.Channel == models.OnlineChannel {
		initialStatus = models.PendingReservationStatus
	}

	for i, resource := range resources {
		quote := ComputePriceQuote(resource.BaseRate, checkIn, checkOut,
			discountShares[i], taxRate, input.TaxApplicable)
		paymentStatus, balance := DerivePaymentState(quote.Total, advanceShares[i])

		reservation := &models.Reservation{
			Number:         FormatReservationNumber(sequence+int64(i), s.policy.SequencePadding),
			ReferenceCode:  NewReferenceCode(),
			ResourceID:     resource.ID,
			OccupantID:     occupant.ID,
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			GuestCount:     input.GuestCount,
			Subtotal:       quote.Subtotal,
			DiscountAmount: quote.DiscountAmount,
			TaxAmount:      quote.TaxAmount,
			TotalAmount:    quote.Total,
			PaidAmount:     advanceShares[i],
			BalanceAmount:  balance,
			PaymentStatus:  paymentStatus,
			Status:         initialStatus,
			Channel:        input.Channel,
			Note:           input.Note,
			BookedAt:       now,
			CreatedBy:      input.ActorID,
		}
		if err := s.reservationRepo.Create(tx, reservation); err != nil {
			return NewInternalError(fmt.Errorf("failed to create reservation: %w", err))
		}

		for _, day := range StayDates(checkIn, checkOut) {
			slot := &models.ReservationSlot{
				ResourceID:    resource.ID,
				ReservationID: reservation.ID,
				SlotDate:      day,
				SlotType:      models.FullDaySlot,
				PriceSnapshot: resource.BaseRate,
			}
			if err := s.slotRepo.UpsertSlot(tx, slot); err != nil {
				if isSlotConflict(err) {
					return NewDateConflict(
						"resource %s is already reserved on %s",
						resource.Code, day.Format("2006-01-02"))
				}
				return NewInternalError(err)
			}
		}

		// Future-dated reservations leave the resource AVAILABLE until
		// check-in day; the scheduler flips it on the day itself.
		if !checkIn.After(now) {
			if err := s.resourceRepo.UpdateStatus(tx, resource.ID, models.BookedResourceStatus); err != nil {
				return NewInternalError(err)
			}
		}

		diffs := ComputeFieldDiffs([]FieldChange{
			{Field: "status", Old: "", New: reservation.Status},
			{Field: "check_in", Old: "", New: reservation.CheckIn.Format(time.RFC3339)},
			{Field: "check_out", Old: "", New: reservation.CheckOut.Format(time.RFC3339)},
			{Field: "total_amount", Old: "", New: reservation.TotalAmount},
			{Field: "paid_amount", Old: "", New: reservation.PaidAmount},
		})
		note := fmt.Sprintf("Reservation %s created for %s via %s channel",
			reservation.Number, resource.Code, reservation.Channel)
		if err := s.appendHistory(tx, reservation.ID, models.CreatedHistoryAction,
			input.ActorID, diffs, note); err != nil {
			return err
		}

		*out = append(*out, reservation)
	}

	return nil
}

// afterCreate runs the fire-and-forget side effects once the transaction has
// committed: notification enqueue, live broadcast, cache invalidation.
func (s *BookingService) afterCreate(input CreateReservationInput, created []*models.Reservation) {
	if s.cache != nil {
		s.cache.InvalidateAsync("reservations")
	}
	for _, reservation := range created {
		if s.broadcaster != nil {
			s.broadcaster.BroadcastReservationEvent("RESERVATION_CREATED", reservation)
		}
		if s.notifier != nil && input.Channel == models.OnlineChannel {
			resource, err := s.resourceRepo.GetByID(reservation.ResourceID)
			if err != nil || resource == nil {
				config.Logger.Warn("Could not load resource for booked notification",
					zap.String("reservation", reservation.Number), zap.Error(err))
				continue
			}
			email := ""
			if input.Occupant.Email != nil {
				email = *input.Occupant.Email
			}
			s.notifier.NotifyResourceBooked(ResourceBookedEvent{
				ReservationNumber: reservation.Number,
				ReferenceCode:     reservation.ReferenceCode,
				GuestName:         input.Occupant.FullName,
				GuestPhone:        input.Occupant.Phone,
				GuestEmail:        email,
				ResourceName:      resource.Name,
				ResourceCode:      resource.Code,
				CheckIn:           reservation.CheckIn,
				CheckOut:          reservation.CheckOut,
				Total:             reservation.TotalAmount,
			})
		}
	}
}

// Get returns a reservation with its recent history. Read-only: repeated
// calls never mutate state or the audit trail.
func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*ReservationWithHistory, error) {
	reservation, err := s.reservationRepo.GetByID(id)
	if err != nil {
		return nil, NewInternalError(err)
	}
	if reservation == nil {
		return nil, NewNotFound("reservation %s was not found", id)
	}
	history, err := s.historyRepo.GetRecentByReservation(id, 10)
	if err != nil {
		return nil, NewInternalError(err)
	}
	return &ReservationWithHistory{Reservation: reservation, RecentHistory: history}, nil
}

// LookupByReference is the public read path: reference code only, so a guest
// can retrieve their own reservation and nothing else.
func (s *BookingService) LookupByReference(ctx context.Context, code string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetByReferenceCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, NewInternalError(err)
	}
	if reservation == nil {
		return nil, NewNotFound("no reservation matches reference code '%s'", code)
	}
	return reservation, nil
}

// Update applies the changed fields of an update request in one transaction:
// state machine validation when the status changes, conflict re-check when
// dates or resource change, diff computation, persistence and audit append.
func (s *BookingService) Update(ctx context.Context, id uuid.UUID, input UpdateReservationInput) (*models.Reservation, error) {
	var updated *models.Reservation
	err := s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.GetByIDForUpdate(tx, id)
		if err != nil {
			return NewInternalError(err)
		}
		if reservation == nil {
			return NewNotFound("reservation %s was not found", id)
		}
		if reservation.Status.IsTerminal() {
			return NewInvalidStatusTransition(
				"reservation %s is %s and can no longer be modified",
				reservation.Number, reservation.Status)
		}

		var changes []FieldChange
		newCheckIn, newCheckOut := reservation.CheckIn, reservation.CheckOut
		datesChanged := false

		if input.CheckIn != nil {
			parsed, err := ParseCheckIn(*input.CheckIn)
			if err != nil {
				return err
			}
			changes = append(changes, FieldChange{Field: "check_in",
				Old: reservation.CheckIn.Format(time.RFC3339), New: parsed.Format(time.RFC3339)})
			newCheckIn = parsed
			datesChanged = true
		}
		if input.CheckOut != nil {
			parsed, err := ParseCheckOut(*input.CheckOut)
			if err != nil {
				return err
			}
			changes = append(changes, FieldChange{Field: "check_out",
				Old: reservation.CheckOut.Format(time.RFC3339), New: parsed.Format(time.RFC3339)})
			newCheckOut = parsed
			datesChanged = true
		}

		targetResourceID := reservation.ResourceID
		if input.ResourceID != nil && *input.ResourceID != reservation.ResourceID {
			if reservation.Status == models.CheckedInReservationStatus {
				return NewValidationError(
					"reservation %s is checked in; the resource can no longer be reassigned",
					reservation.Number)
			}
			changes = append(changes, FieldChange{Field: "resource_id",
				Old: reservation.ResourceID, New: *input.ResourceID})
			targetResourceID = *input.ResourceID
		}

		resource, err := s.resourceRepo.GetByIDForUpdate(tx, targetResourceID)
		if err != nil {
			return NewInternalError(err)
		}
		if resource == nil {
			return NewNotFound("resource %s was not found", targetResourceID)
		}
		resourceChanged := targetResourceID != reservation.ResourceID
		if resourceChanged && (!resource.IsActive || resource.Status == models.MaintenanceResourceStatus) {
			return NewResourceUnavailable("resource %s (%s) is under maintenance or inactive",
				resource.Code, resource.Name)
		}

		if datesChanged {
			if err := ValidateStayInterval(newCheckIn, newCheckOut, s.now(), resource.Type,
				s.policy.MinStayRoom, s.policy.MinStayHall); err != nil {
				return err
			}
		}
		if datesChanged || resourceChanged {
			existing, err := s.reservationRepo.FindOverlapping(tx, targetResourceID, newCheckIn, newCheckOut)
			if err != nil {
				return NewInternalError(err)
			}
			if existing != nil && existing.ID != reservation.ID {
				return NewDateConflict(
					"resource %s is already reserved from %s to %s (reservation %s)",
					resource.Code,
					existing.CheckIn.Format("2006-01-02"),
					existing.CheckOut.Format("2006-01-02"),
					existing.Number)
			}
		}

		if input.GuestCount != nil && *input.GuestCount != reservation.GuestCount {
			if *input.GuestCount < 1 {
				return NewValidationError("guest count must be at least 1")
			}
			changes = append(changes, FieldChange{Field: "guest_count",
				Old: reservation.GuestCount, New: *input.GuestCount})
			reservation.GuestCount = *input.GuestCount
		}
		if input.Note != nil {
			changes = append(changes, FieldChange{Field: "note",
				Old: reservation.Note, New: input.Note})
			reservation.Note = input.Note
		}

		// Apply the interval and resource before any status side effects so
		// entering CHECKED_IN marks the reassigned resource, not the old one.
		reservation.CheckIn = newCheckIn
		reservation.CheckOut = newCheckOut
		reservation.ResourceID = targetResourceID

		action := models.UpdatedHistoryAction
		if input.Status != nil && *input.Status != reservation.Status {
			if err := ValidateStatusTransition(reservation.Status, *input.Status); err != nil {
				return err
			}
			changes = append(changes, FieldChange{Field: "status",
				Old: reservation.Status, New: *input.Status})
			reservation.Status = *input.Status
			action = models.StatusChangedHistoryAction
			if err := s.applyStatusSideEffects(tx, reservation); err != nil {
				return err
			}
		}

		diffs := ComputeFieldDiffs(changes)
		if len(diffs) == 0 {
			updated = reservation
			return nil // nothing changed, no write, no audit entry
		}

		reservation.UpdatedBy = input.ActorID

		// Re-point the slot rows at the new interval/resource so the day-level
		// arbiter stays consistent with the reservation.
		if datesChanged || resourceChanged {
			if err := s.slotRepo.ReleaseByReservation(tx, reservation.ID); err != nil {
				return NewInternalError(err)
			}
			for _, day := range StayDates(newCheckIn, newCheckOut) {
				slot := &models.ReservationSlot{
					ResourceID:    targetResourceID,
					ReservationID: reservation.ID,
					SlotDate:      day,
					SlotType:      models.FullDaySlot,
					PriceSnapshot: resource.BaseRate,
				}
				if err := s.slotRepo.UpsertSlot(tx, slot); err != nil {
					if isSlotConflict(err) {
						return NewDateConflict("resource %s is already reserved on %s",
							resource.Code, day.Format("2006-01-02"))
					}
					return NewInternalError(err)
				}
			}
		}

		if err := s.reservationRepo.Save(tx, reservation); err != nil {
			return NewInternalError(err)
		}

		note := fmt.Sprintf("Reservation %s updated (%d field(s))", reservation.Number, len(diffs))
		if err := s.appendHistory(tx, reservation.ID, action, input.ActorID, diffs, note); err != nil {
			return err
		}
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation("RESERVATION_UPDATED", updated)
	return updated, nil
}

// Cancel transitions a reservation to CANCELLED, releasing its slots and its
// resource. Already checked-out reservations are rejected by the state
// machine (CHECKED_OUT is terminal).
func (s *BookingService) Cancel(ctx context.Context, id uuid.UUID, actorID *string, reason string) (*models.Reservation, error) {
	return s.transition(ctx, id, models.CancelledReservationStatus, actorID, reason, models.CancelledHistoryAction)
}

// CheckIn moves CONFIRMED to CHECKED_IN and marks the resource BOOKED.
func (s *BookingService) CheckIn(ctx context.Context, id uuid.UUID, actorID *string) (*models.Reservation, error) {
	return s.transition(ctx, id, models.CheckedInReservationStatus, actorID, "Guest checked in", models.StatusChangedHistoryAction)
}

// CheckOut moves CHECKED_IN to CHECKED_OUT, releasing slots and resource.
func (s *BookingService) CheckOut(ctx context.Context, id uuid.UUID, actorID *string) (*models.Reservation, error) {
	return s.transition(ctx, id, models.CheckedOutReservationStatus, actorID, "Guest checked out", models.StatusChangedHistoryAction)
}

// Confirm moves a pending (public-channel) reservation to CONFIRMED.
func (s *BookingService) Confirm(ctx context.Context, id uuid.UUID, actorID *string) (*models.Reservation, error) {
	return s.transition(ctx, id, models.ConfirmedReservationStatus, actorID, "Reservation confirmed", models.StatusChangedHistoryAction)
}

func (s *BookingService) transition(
	ctx context.Context,
	id uuid.UUID,
	to models.ReservationStatus,
	actorID *string,
	note string,
	action models.HistoryAction,
) (*models.Reservation, error) {
	var updated *models.Reservation
	err := s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.GetByIDForUpdate(tx, id)
		if err != nil {
			return NewInternalError(err)
		}
		if reservation == nil {
			return NewNotFound("reservation %s was not found", id)
		}
		if err := ValidateStatusTransition(reservation.Status, to); err != nil {
			return err
		}

		diffs := ComputeFieldDiffs([]FieldChange{
			{Field: "status", Old: reservation.Status, New: to},
		})
		reservation.Status = to
		reservation.UpdatedBy = actorID

		if err := s.applyStatusSideEffects(tx, reservation); err != nil {
			return err
		}
		if err := s.reservationRepo.Save(tx, reservation); err != nil {
			return NewInternalError(err)
		}
		if err := s.appendHistory(tx, reservation.ID, action, actorID, diffs, note); err != nil {
			return err
		}
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := "RESERVATION_UPDATED"
	if to == models.CancelledReservationStatus {
		event = "RESERVATION_CANCELLED"
	}
	s.afterMutation(event, updated)
	return updated, nil
}

// applyStatusSideEffects performs the resource/slot effects of entering a
// state. The state machine itself stays a pure validator.
func (s *BookingService) applyStatusSideEffects(tx *gorm.DB, reservation *models.Reservation) error {
	switch reservation.Status {
	case models.CheckedInReservationStatus:
		if err := s.resourceRepo.UpdateStatus(tx, reservation.ResourceID, models.BookedResourceStatus); err != nil {
			return NewInternalError(err)
		}
	case models.CheckedOutReservationStatus, models.CancelledReservationStatus:
		if err := s.slotRepo.ReleaseByReservation(tx, reservation.ID); err != nil {
			return NewInternalError(err)
		}
		if err := s.resourceRepo.UpdateStatus(tx, reservation.ResourceID, models.AvailableResourceStatus); err != nil {
			return NewInternalError(err)
		}
	}
	return nil
}

// RecordPayment adds an amount to the paid total and re-derives the payment
// status and balance, with an audit entry, in one transaction.
func (s *BookingService) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal, actorID *string, note string) (*models.Reservation, error) {
	if !amount.IsPositive() {
		return nil, NewValidationError("payment amount must be positive")
	}

	var updated *models.Reservation
	err := s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.GetByIDForUpdate(tx, id)
		if err != nil {
			return NewInternalError(err)
		}
		if reservation == nil {
			return NewNotFound("reservation %s was not found", id)
		}
		if reservation.Status.IsTerminal() {
			return NewInvalidStatusTransition(
				"reservation %s is %s; payments can no longer be recorded",
				reservation.Number, reservation.Status)
		}

		oldPaid := reservation.PaidAmount
		oldStatus := reservation.PaymentStatus
		oldBalance := reservation.BalanceAmount

		reservation.PaidAmount = reservation.PaidAmount.Add(amount)
		paymentStatus, balance := DerivePaymentState(reservation.TotalAmount, reservation.PaidAmount)
		reservation.PaymentStatus = paymentStatus
		reservation.BalanceAmount = balance
		reservation.UpdatedBy = actorID

		if err := s.reservationRepo.Save(tx, reservation); err != nil {
			return NewInternalError(err)
		}

		diffs := ComputeFieldDiffs([]FieldChange{
			{Field: "paid_amount", Old: oldPaid, New: reservation.PaidAmount},
			{Field: "payment_status", Old: oldStatus, New: reservation.PaymentStatus},
			{Field: "balance_amount", Old: oldBalance, New: reservation.BalanceAmount},
		})
		if note == "" {
			note = fmt.Sprintf("Payment of %s recorded", amount.StringFixed(2))
		}
		if err := s.appendHistory(tx, reservation.ID, models.PaymentRecordedHistoryAction,
			actorID, diffs, note); err != nil {
			return err
		}
		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation("RESERVATION_UPDATED", updated)
	return updated, nil
}

// ActivateDueCheckIns marks resources BOOKED for confirmed reservations whose
// check-in time has arrived. Called by the daily scheduler.
func (s *BookingService) ActivateDueCheckIns(ctx context.Context) (int, error) {
	due, err := s.reservationRepo.ListStartingBy(s.now())
	if err != nil {
		return 0, NewInternalError(err)
	}
	flipped := 0
	for _, reservation := range due {
		err := s.txRunner.InTx(ctx, func(tx *gorm.DB) error {
			return s.resourceRepo.UpdateStatus(tx, reservation.ResourceID, models.BookedResourceStatus)
		})
		if err != nil {
			config.Logger.Error("Failed to mark resource booked for due check-in",
				zap.String("reservation", reservation.Number), zap.Error(err))
			continue
		}
		flipped++
	}
	return flipped, nil
}

func (s *BookingService) appendHistory(
	tx *gorm.DB,
	reservationID uuid.UUID,
	action models.HistoryAction,
	actorID *string,
	diffs []models.FieldDiff,
	note string,
) error {
	raw, err := MarshalDiffs(diffs)
	if err != nil {
		return NewInternalError(err)
	}
	entry := &models.HistoryEntry{
		ReservationID: reservationID,
		Action:        action,
		ActorID:       actorID,
		Changes:       raw,
		Note:          note,
	}
	if err := s.historyRepo.Append(tx, entry); err != nil {
		return NewInternalError(fmt.Errorf("failed to append history entry: %w", err))
	}
	return nil
}

func (s *BookingService) afterMutation(event string, reservation *models.Reservation) {
	if reservation == nil {
		return
	}
	if s.cache != nil {
		s.cache.InvalidateAsync("reservations")
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastReservationEvent(event, reservation)
	}
}

func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	var out []uuid.UUID
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// isTransient reports whether a storage error is worth retrying: Postgres
// serialization failures (40001), deadlocks (40P01) and uniqueness races on
// the generated identifiers. Domain errors — DateConflict included — are
// never transient.
func isTransient(err error) bool {
	var de *DomainError
	if errors.As(err, &de) && de.Code != CodeInternalError {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "idx_reservations_number") ||
		strings.Contains(msg, "idx_reservations_reference_code")
}

// isSlotConflict reports whether an error is the slot uniqueness constraint
// firing, i.e. another transaction claimed the same resource day first.
func isSlotConflict(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "idx_slots_resource_date_type") ||
		strings.Contains(msg, "already taken")
}
