package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-management-backend/config"
	"hotel-management-backend/db/models"
)

// ---- fakes ----

type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeReservationRepo struct {
	byID map[uuid.UUID]*models.Reservation

	// Failure injection for the create path.
	createFailures int
	createErr      error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[uuid.UUID]*models.Reservation)}
}

func (r *fakeReservationRepo) Create(tx *gorm.DB, reservation *models.Reservation) error {
	if r.createFailures > 0 {
		r.createFailures--
		return r.createErr
	}
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	r.byID[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepo) Save(tx *gorm.DB, reservation *models.Reservation) error {
	r.byID[reservation.ID] = reservation
	return nil
}

func (r *fakeReservationRepo) GetByID(id uuid.UUID) (*models.Reservation, error) {
	return r.byID[id], nil
}

func (r *fakeReservationRepo) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Reservation, error) {
	return r.byID[id], nil
}

func (r *fakeReservationRepo) GetByReferenceCode(code string) (*models.Reservation, error) {
	for _, reservation := range r.byID {
		if reservation.ReferenceCode == code {
			return reservation, nil
		}
	}
	return nil, nil
}

func (r *fakeReservationRepo) FindOverlapping(tx *gorm.DB, resourceID uuid.UUID, checkIn, checkOut time.Time) (*models.Reservation, error) {
	for _, existing := range r.byID {
		if existing.ResourceID != resourceID {
			continue
		}
		if existing.Status == models.CancelledReservationStatus || existing.Status == models.CheckedOutReservationStatus {
			continue
		}
		// Half-open overlap: touching boundaries do not conflict.
		if existing.CheckIn.Before(checkOut) && checkIn.Before(existing.CheckOut) {
			return existing, nil
		}
	}
	return nil, nil
}

func (r *fakeReservationRepo) NextSequence(tx *gorm.DB) (int64, error) {
	return int64(len(r.byID)) + 1, nil
}

func (r *fakeReservationRepo) GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.Reservation, int64, error) {
	var out []models.Reservation
	for _, reservation := range r.byID {
		out = append(out, *reservation)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReservationRepo) ListStartingBy(t time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, reservation := range r.byID {
		if reservation.Status == models.ConfirmedReservationStatus && !reservation.CheckIn.After(t) {
			out = append(out, *reservation)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) ListOverdueCheckouts(t time.Time) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, reservation := range r.byID {
		if reservation.Status == models.CheckedInReservationStatus && reservation.CheckOut.Before(t) {
			out = append(out, *reservation)
		}
	}
	return out, nil
}

type fakeSlotRepo struct {
	slots map[string]*models.ReservationSlot // resourceID|date
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]*models.ReservationSlot)}
}

func slotKey(resourceID uuid.UUID, date time.Time) string {
	return resourceID.String() + "|" + date.Format("2006-01-02")
}

func (r *fakeSlotRepo) UpsertSlot(tx *gorm.DB, slot *models.ReservationSlot) error {
	key := slotKey(slot.ResourceID, slot.SlotDate)
	if existing, ok := r.slots[key]; ok {
		if !existing.IsAvailable && existing.ReservationID != slot.ReservationID {
			return fmt.Errorf("slot for resource %s on %s is already taken",
				slot.ResourceID, slot.SlotDate.Format("2006-01-02"))
		}
		existing.ReservationID = slot.ReservationID
		existing.IsAvailable = false
		*slot = *existing
		return nil
	}
	slot.IsAvailable = false
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	r.slots[key] = slot
	return nil
}

func (r *fakeSlotRepo) ReleaseByReservation(tx *gorm.DB, reservationID uuid.UUID) error {
	for _, slot := range r.slots {
		if slot.ReservationID == reservationID {
			slot.IsAvailable = true
		}
	}
	return nil
}

func (r *fakeSlotRepo) heldCount() int {
	held := 0
	for _, slot := range r.slots {
		if !slot.IsAvailable {
			held++
		}
	}
	return held
}

type fakeOccupantRepo struct {
	created []*models.Occupant
}

func (r *fakeOccupantRepo) Create(tx *gorm.DB, occupant *models.Occupant) error {
	if occupant.ID == uuid.Nil {
		occupant.ID = uuid.New()
	}
	r.created = append(r.created, occupant)
	return nil
}

func (r *fakeOccupantRepo) GetByID(id uuid.UUID) (*models.Occupant, error) {
	for _, occupant := range r.created {
		if occupant.ID == id {
			return occupant, nil
		}
	}
	return nil, nil
}

type fakeResourceRepo struct {
	byID map[uuid.UUID]*models.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{byID: make(map[uuid.UUID]*models.Resource)}
}

func (r *fakeResourceRepo) Create(resource *models.Resource) (*models.Resource, error) {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	r.byID[resource.ID] = resource
	return resource, nil
}

func (r *fakeResourceRepo) Save(tx *gorm.DB, resource *models.Resource) error {
	r.byID[resource.ID] = resource
	return nil
}

func (r *fakeResourceRepo) GetByID(id uuid.UUID) (*models.Resource, error) {
	return r.byID[id], nil
}

func (r *fakeResourceRepo) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Resource, error) {
	return r.byID[id], nil
}

func (r *fakeResourceRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status models.ResourceStatus) error {
	if resource, ok := r.byID[id]; ok {
		resource.Status = status
	}
	return nil
}

func (r *fakeResourceRepo) GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.Resource, int64, error) {
	var out []models.Resource
	for _, resource := range r.byID {
		out = append(out, *resource)
	}
	return out, int64(len(out)), nil
}

type fakeHistoryRepo struct {
	entries []*models.HistoryEntry
}

func (r *fakeHistoryRepo) Append(tx *gorm.DB, entry *models.HistoryEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeHistoryRepo) GetByReservation(reservationID uuid.UUID) ([]models.HistoryEntry, error) {
	var out []models.HistoryEntry
	for _, entry := range r.entries {
		if entry.ReservationID == reservationID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) GetRecentByReservation(reservationID uuid.UUID, limit int) ([]models.HistoryEntry, error) {
	all, _ := r.GetByReservation(reservationID)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *fakeHistoryRepo) GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.HistoryEntry, int64, error) {
	var out []models.HistoryEntry
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	return out, int64(len(out)), nil
}

func (r *fakeHistoryRepo) actionsFor(reservationID uuid.UUID) []models.HistoryAction {
	var actions []models.HistoryAction
	for _, entry := range r.entries {
		if entry.ReservationID == reservationID {
			actions = append(actions, entry.Action)
		}
	}
	return actions
}

type fakeNotifier struct {
	events []ResourceBookedEvent
}

func (n *fakeNotifier) NotifyResourceBooked(event ResourceBookedEvent) {
	n.events = append(n.events, event)
}

type fakeBroadcaster struct {
	actions []string
}

func (b *fakeBroadcaster) BroadcastReservationEvent(action string, reservation *models.Reservation) {
	b.actions = append(b.actions, action)
}

type fakeCache struct {
	invalidations int
}

func (c *fakeCache) InvalidateAsync(resourceType string) {
	c.invalidations++
}

// ---- harness ----

type bookingFixture struct {
	service         *BookingService
	reservationRepo *fakeReservationRepo
	occupantRepo    *fakeOccupantRepo
	slotRepo        *fakeSlotRepo
	resourceRepo    *fakeResourceRepo
	historyRepo     *fakeHistoryRepo
	notifier        *fakeNotifier
	broadcaster     *fakeBroadcaster
	cache           *fakeCache
	now             time.Time
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		reservationRepo: newFakeReservationRepo(),
		occupantRepo:    &fakeOccupantRepo{},
		slotRepo:        newFakeSlotRepo(),
		resourceRepo:    newFakeResourceRepo(),
		historyRepo:     &fakeHistoryRepo{},
		notifier:        &fakeNotifier{},
		broadcaster:     &fakeBroadcaster{},
		cache:           &fakeCache{},
		now:             time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	policy := config.BookingPolicy{
		MinStayRoom:     12 * time.Hour,
		MinStayHall:     24 * time.Hour,
		DefaultTaxRate:  0.15,
		CreateRetries:   2,
		SequencePadding: 6,
	}

	f.service = NewBookingService(
		fakeTxRunner{},
		f.reservationRepo,
		f.occupantRepo,
		f.slotRepo,
		f.resourceRepo,
		f.historyRepo,
		f.notifier,
		f.broadcaster,
		f.cache,
		policy,
	)
	f.service.now = func() time.Time { return f.now }

	return f
}

func (f *bookingFixture) addRoom(code string, rate string) *models.Resource {
	resource := &models.Resource{
		ID:       uuid.New(),
		Code:     code,
		Name:     "Room " + code,
		Type:     models.RoomResourceType,
		Capacity: 2,
		BaseRate: d(rate),
		Status:   models.AvailableResourceStatus,
		IsActive: true,
	}
	f.resourceRepo.byID[resource.ID] = resource
	return resource
}

func staffInput(resourceIDs ...uuid.UUID) CreateReservationInput {
	actor := "staff-1"
	return CreateReservationInput{
		ResourceIDs: resourceIDs,
		Occupant: OccupantInput{
			FullName:       "Jane Moyo",
			Phone:          "+263771234567",
			Classification: models.WalkInOccupant,
		},
		CheckIn:       "2026-03-11",
		CheckOut:      "2026-03-12",
		GuestCount:    2,
		Discount:      d("500"),
		TaxApplicable: true,
		Channel:       models.StaffChannel,
		ActorID:       &actor,
	}
}

// ---- tests ----

func TestCreateStaffReservation(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-101", "2500")

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	require.Len(t, created, 1)

	reservation := created[0]
	assert.Equal(t, "RSV-000001", reservation.Number)
	assert.Regexp(t, `^REF-[0-9A-F]{8}$`, reservation.ReferenceCode)
	assert.Equal(t, models.ConfirmedReservationStatus, reservation.Status)
	assert.Equal(t, models.StaffChannel, reservation.Channel)

	// Two billed days: date-only checkout runs to end of day.
	assert.True(t, reservation.Subtotal.Equal(d("5000")), "subtotal = %s", reservation.Subtotal)
	assert.True(t, reservation.DiscountAmount.Equal(d("500")))
	assert.True(t, reservation.TaxAmount.Equal(d("675")))
	assert.True(t, reservation.TotalAmount.Equal(d("5175")))
	assert.Equal(t, models.PendingPayment, reservation.PaymentStatus)
	assert.True(t, reservation.BalanceAmount.Equal(d("5175")))

	assert.Equal(t, 2, f.slotRepo.heldCount(), "one slot per occupied day")
	assert.Equal(t, []models.HistoryAction{models.CreatedHistoryAction}, f.historyRepo.actionsFor(reservation.ID))

	// Future check-in: resource stays AVAILABLE until the scheduler flips it.
	assert.Equal(t, models.AvailableResourceStatus, room.Status)

	assert.Equal(t, []string{"RESERVATION_CREATED"}, f.broadcaster.actions)
	assert.Equal(t, 1, f.cache.invalidations)
	assert.Empty(t, f.notifier.events, "staff bookings do not notify")
}

func TestCreateSameDayCheckInMarksResourceBooked(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-102", "2000")

	input := staffInput(room.ID)
	input.CheckIn = "2026-03-10" // today
	input.CheckOut = "2026-03-11"

	_, err := f.service.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, models.BookedResourceStatus, room.Status)
}

func TestCreatePublicReservationStartsPendingAndNotifies(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-103", "2500")

	email := "guest@example.com"
	input := staffInput(room.ID)
	input.Channel = models.OnlineChannel
	input.ActorID = nil
	input.Occupant.Email = &email
	input.Occupant.Classification = models.OnlineOccupant

	created, err := f.service.Create(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, created, 1)

	assert.Equal(t, models.PendingReservationStatus, created[0].Status)
	assert.Nil(t, created[0].CreatedBy)

	require.Len(t, f.notifier.events, 1)
	event := f.notifier.events[0]
	assert.Equal(t, created[0].Number, event.ReservationNumber)
	assert.Equal(t, "guest@example.com", event.GuestEmail)
	assert.Equal(t, "RM-103", event.ResourceCode)
}

func TestCreateRejectsOverlap(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-104", "2500")

	_, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)

	input := staffInput(room.ID)
	input.CheckIn = "2026-03-11"
	input.CheckOut = "2026-03-14"

	_, err = f.service.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, CodeDateConflict, CodeOf(err))
	assert.Contains(t, err.Error(), "RM-104")
	assert.Contains(t, err.Error(), "RSV-000001")

	assert.Len(t, f.reservationRepo.byID, 1, "conflicting create must not persist")
}

func TestCreateAllowsTouchingBoundaries(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-105", "2500")

	first := staffInput(room.ID)
	first.CheckIn = "2026-03-11T14:00:00Z"
	first.CheckOut = "2026-03-13T00:00:00Z"
	_, err := f.service.Create(context.Background(), first)
	require.NoError(t, err)

	// New check-in exactly at the existing checkout: no conflict.
	second := staffInput(room.ID)
	second.CheckIn = "2026-03-13T00:00:00Z"
	second.CheckOut = "2026-03-15T00:00:00Z"
	created, err := f.service.Create(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "RSV-000002", created[0].Number)
}

func TestCreateMapsSlotRaceToDateConflict(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-106", "2500")

	// A concurrently committed transaction holds 2026-03-11 without a
	// reservation visible to the overlap query: the day-level uniqueness
	// arbiter must still turn the race into a date conflict.
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	f.slotRepo.slots[slotKey(room.ID, day)] = &models.ReservationSlot{
		ID:            uuid.New(),
		ResourceID:    room.ID,
		ReservationID: uuid.New(),
		SlotDate:      day,
		SlotType:      models.FullDaySlot,
		IsAvailable:   false,
	}

	_, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.Error(t, err)
	assert.Equal(t, CodeDateConflict, CodeOf(err))
	assert.Contains(t, err.Error(), "2026-03-11")

	// The fakes do not roll back, so each attempt leaves a row behind:
	// exactly one row means the conflict was not retried.
	assert.Len(t, f.reservationRepo.byID, 1)
}

func TestCreateRetriesTransientFailures(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-107", "2500")

	f.reservationRepo.createFailures = 1
	f.reservationRepo.createErr = fmt.Errorf(
		`duplicate key value violates unique constraint "idx_reservations_number"`)

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "RSV-000001", created[0].Number)
}

func TestCreateGivesUpAfterBoundedRetries(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-108", "2500")

	f.reservationRepo.createFailures = 5
	f.reservationRepo.createErr = fmt.Errorf(
		`duplicate key value violates unique constraint "idx_reservations_number"`)

	_, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.Error(t, err)
	assert.Equal(t, CodeInternalError, CodeOf(err))

	// CreateRetries is 2: the initial attempt plus two retries.
	assert.Equal(t, 2, f.reservationRepo.createFailures)
}

func TestCreateMultiResourceAllOrNothing(t *testing.T) {
	f := newBookingFixture(t)
	roomA := f.addRoom("RM-201", "2000")
	roomB := f.addRoom("RM-202", "3000")
	roomB.Status = models.MaintenanceResourceStatus

	_, err := f.service.Create(context.Background(), staffInput(roomA.ID, roomB.ID))
	require.Error(t, err)
	assert.Equal(t, CodeResourceUnavailable, CodeOf(err))

	assert.Empty(t, f.reservationRepo.byID, "no partial booking of a subset")
	assert.Zero(t, f.slotRepo.heldCount())
	assert.Empty(t, f.historyRepo.entries)
}

func TestCreateMultiResourceSplitsDiscount(t *testing.T) {
	f := newBookingFixture(t)
	roomA := f.addRoom("RM-203", "2500")
	roomB := f.addRoom("RM-204", "2500")

	input := staffInput(roomA.ID, roomB.ID)
	input.Discount = d("100")

	created, err := f.service.Create(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.True(t, created[0].DiscountAmount.Equal(d("50")))
	assert.True(t, created[1].DiscountAmount.Equal(d("50")))
	assert.Equal(t, "RSV-000001", created[0].Number)
	assert.Equal(t, "RSV-000002", created[1].Number)

	// One occupant snapshot shared by both reservations.
	require.Len(t, f.occupantRepo.created, 1)
	assert.Equal(t, created[0].OccupantID, created[1].OccupantID)
}

func TestCreateValidation(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-205", "2500")

	t.Run("no resources", func(t *testing.T) {
		input := staffInput()
		_, err := f.service.Create(context.Background(), input)
		assert.Equal(t, CodeValidationError, CodeOf(err))
	})

	t.Run("missing guest name", func(t *testing.T) {
		input := staffInput(room.ID)
		input.Occupant.FullName = ""
		_, err := f.service.Create(context.Background(), input)
		assert.Equal(t, CodeValidationError, CodeOf(err))
	})

	t.Run("unknown resource", func(t *testing.T) {
		input := staffInput(uuid.New())
		_, err := f.service.Create(context.Background(), input)
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	t.Run("past check-in", func(t *testing.T) {
		input := staffInput(room.ID)
		input.CheckIn = "2026-03-01"
		input.CheckOut = "2026-03-05"
		_, err := f.service.Create(context.Background(), input)
		assert.Equal(t, CodeInvalidDate, CodeOf(err))
	})

	t.Run("negative discount", func(t *testing.T) {
		input := staffInput(room.ID)
		input.Discount = d("-10")
		_, err := f.service.Create(context.Background(), input)
		assert.Equal(t, CodeValidationError, CodeOf(err))
	})
}

func TestGetIsReadOnly(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-301", "2500")

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	id := created[0].ID

	before := len(f.historyRepo.entries)
	for i := 0; i < 3; i++ {
		got, err := f.service.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, got.Reservation.ID)
		require.Len(t, got.RecentHistory, 1)
	}
	assert.Equal(t, before, len(f.historyRepo.entries), "reads must not append history")
}

func TestGetNotFound(t *testing.T) {
	f := newBookingFixture(t)
	_, err := f.service.Get(context.Background(), uuid.New())
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestLookupByReference(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-302", "2500")

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)

	found, err := f.service.LookupByReference(context.Background(), "  "+created[0].ReferenceCode+" ")
	require.NoError(t, err)
	assert.Equal(t, created[0].ID, found.ID)

	_, err = f.service.LookupByReference(context.Background(), "REF-NOPE1234")
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestLifecycleTransitions(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-401", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	id := created[0].ID

	// CONFIRMED -> CHECKED_IN marks the resource booked.
	checkedIn, err := f.service.CheckIn(context.Background(), id, &actor)
	require.NoError(t, err)
	assert.Equal(t, models.CheckedInReservationStatus, checkedIn.Status)
	assert.Equal(t, models.BookedResourceStatus, room.Status)

	// CHECKED_IN -> CHECKED_OUT releases slots and the resource.
	checkedOut, err := f.service.CheckOut(context.Background(), id, &actor)
	require.NoError(t, err)
	assert.Equal(t, models.CheckedOutReservationStatus, checkedOut.Status)
	assert.Equal(t, models.AvailableResourceStatus, room.Status)
	assert.Zero(t, f.slotRepo.heldCount())

	// Terminal: nothing moves out of CHECKED_OUT.
	_, err = f.service.Cancel(context.Background(), id, &actor, "too late")
	assert.Equal(t, CodeInvalidStatusTransition, CodeOf(err))

	actions := f.historyRepo.actionsFor(id)
	assert.Equal(t, []models.HistoryAction{
		models.CreatedHistoryAction,
		models.StatusChangedHistoryAction,
		models.StatusChangedHistoryAction,
	}, actions)
}

func TestCheckInRequiresConfirmed(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-402", "2500")
	actor := "staff-1"

	input := staffInput(room.ID)
	input.Channel = models.OnlineChannel
	input.ActorID = nil
	created, err := f.service.Create(context.Background(), input)
	require.NoError(t, err)

	// PENDING -> CHECKED_IN skips confirmation and must be rejected.
	_, err = f.service.CheckIn(context.Background(), created[0].ID, &actor)
	assert.Equal(t, CodeInvalidStatusTransition, CodeOf(err))

	// Confirm first, then check in.
	_, err = f.service.Confirm(context.Background(), created[0].ID, &actor)
	require.NoError(t, err)
	_, err = f.service.CheckIn(context.Background(), created[0].ID, &actor)
	require.NoError(t, err)
}

func TestCancelReleasesSlotsAndResource(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-403", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	id := created[0].ID
	require.Equal(t, 2, f.slotRepo.heldCount())

	cancelled, err := f.service.Cancel(context.Background(), id, &actor, "guest request")
	require.NoError(t, err)
	assert.Equal(t, models.CancelledReservationStatus, cancelled.Status)
	assert.Zero(t, f.slotRepo.heldCount())
	assert.Equal(t, models.AvailableResourceStatus, room.Status)

	actions := f.historyRepo.actionsFor(id)
	assert.Equal(t, models.CancelledHistoryAction, actions[len(actions)-1])

	// The cancelled interval is free again.
	_, err = f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
}

func TestUpdateRejectsTerminalReservation(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-404", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	_, err = f.service.Cancel(context.Background(), created[0].ID, &actor, "")
	require.NoError(t, err)

	count := 3
	_, err = f.service.Update(context.Background(), created[0].ID, UpdateReservationInput{
		GuestCount: &count,
		ActorID:    &actor,
	})
	assert.Equal(t, CodeInvalidStatusTransition, CodeOf(err))
}

func TestUpdateDateChangeExcludesSelfFromConflictCheck(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-405", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)

	// Extending a stay overlaps the reservation's own interval; that must not
	// count as a conflict.
	newCheckOut := "2026-03-13"
	updated, err := f.service.Update(context.Background(), created[0].ID, UpdateReservationInput{
		CheckOut: &newCheckOut,
		ActorID:  &actor,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 13, 23, 59, 59, 0, time.UTC), updated.CheckOut)
}

func TestUpdateDateChangeConflictsWithOtherReservation(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-406", "2500")
	actor := "staff-1"

	first, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)

	second := staffInput(room.ID)
	second.CheckIn = "2026-03-14"
	second.CheckOut = "2026-03-16"
	other, err := f.service.Create(context.Background(), second)
	require.NoError(t, err)

	// Pushing the first stay into the second must conflict.
	newCheckOut := "2026-03-15"
	_, err = f.service.Update(context.Background(), first[0].ID, UpdateReservationInput{
		CheckOut: &newCheckOut,
		ActorID:  &actor,
	})
	require.Error(t, err)
	assert.Equal(t, CodeDateConflict, CodeOf(err))
	assert.Contains(t, err.Error(), other[0].Number)
}

func TestUpdateReassignWithCheckInMarksNewResource(t *testing.T) {
	f := newBookingFixture(t)
	oldRoom := f.addRoom("RM-410", "2500")
	newRoom := f.addRoom("RM-411", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(oldRoom.ID))
	require.NoError(t, err)

	status := models.CheckedInReservationStatus
	updated, err := f.service.Update(context.Background(), created[0].ID, UpdateReservationInput{
		ResourceID: &newRoom.ID,
		Status:     &status,
		ActorID:    &actor,
	})
	require.NoError(t, err)
	assert.Equal(t, newRoom.ID, updated.ResourceID)

	// The guest occupies the room they were moved to, not the one vacated.
	assert.Equal(t, models.BookedResourceStatus, newRoom.Status)
	assert.Equal(t, models.AvailableResourceStatus, oldRoom.Status)

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	held := f.slotRepo.slots[slotKey(newRoom.ID, day)]
	require.NotNil(t, held)
	assert.False(t, held.IsAvailable)
	released := f.slotRepo.slots[slotKey(oldRoom.ID, day)]
	require.NotNil(t, released)
	assert.True(t, released.IsAvailable)
}

func TestUpdateNoopSkipsAudit(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-407", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	before := len(f.historyRepo.entries)

	sameCount := 2
	_, err = f.service.Update(context.Background(), created[0].ID, UpdateReservationInput{
		GuestCount: &sameCount,
		ActorID:    &actor,
	})
	require.NoError(t, err)
	assert.Equal(t, before, len(f.historyRepo.entries), "no-op update must not append history")
}

func TestRecordPayment(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-501", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	id := created[0].ID

	// Partial payment.
	updated, err := f.service.RecordPayment(context.Background(), id, d("2000"), &actor, "deposit")
	require.NoError(t, err)
	assert.Equal(t, models.PartialPayment, updated.PaymentStatus)
	assert.True(t, updated.BalanceAmount.Equal(d("3175")))

	// Settling the balance.
	updated, err = f.service.RecordPayment(context.Background(), id, d("3175"), &actor, "")
	require.NoError(t, err)
	assert.Equal(t, models.PaidPayment, updated.PaymentStatus)
	assert.True(t, updated.BalanceAmount.Equal(decimal.Zero))

	actions := f.historyRepo.actionsFor(id)
	assert.Equal(t, models.PaymentRecordedHistoryAction, actions[len(actions)-1])
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-502", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)

	_, err = f.service.RecordPayment(context.Background(), created[0].ID, decimal.Zero, &actor, "")
	assert.Equal(t, CodeValidationError, CodeOf(err))

	_, err = f.service.Cancel(context.Background(), created[0].ID, &actor, "")
	require.NoError(t, err)

	_, err = f.service.RecordPayment(context.Background(), created[0].ID, d("100"), &actor, "")
	assert.Equal(t, CodeInvalidStatusTransition, CodeOf(err))
}

func TestRecordPaymentRejectsTerminalReservation(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-503", "2500")
	actor := "staff-1"

	created, err := f.service.Create(context.Background(), staffInput(room.ID))
	require.NoError(t, err)
	id := created[0].ID

	_, err = f.service.CheckIn(context.Background(), id, &actor)
	require.NoError(t, err)
	_, err = f.service.CheckOut(context.Background(), id, &actor)
	require.NoError(t, err)

	historyBefore := len(f.historyRepo.entries)
	paidBefore := created[0].PaidAmount

	// CHECKED_OUT is terminal: no field mutation, no new audit entry.
	_, err = f.service.RecordPayment(context.Background(), id, d("100"), &actor, "")
	require.Error(t, err)
	assert.Equal(t, CodeInvalidStatusTransition, CodeOf(err))

	stored := f.reservationRepo.byID[id]
	assert.True(t, stored.PaidAmount.Equal(paidBefore))
	assert.Equal(t, models.PendingPayment, stored.PaymentStatus)
	assert.Equal(t, historyBefore, len(f.historyRepo.entries))
}

func TestActivateDueCheckIns(t *testing.T) {
	f := newBookingFixture(t)
	room := f.addRoom("RM-601", "2500")

	input := staffInput(room.ID)
	input.CheckIn = "2026-03-11"
	input.CheckOut = "2026-03-12"
	_, err := f.service.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, models.AvailableResourceStatus, room.Status)

	// The check-in day arrives.
	f.now = time.Date(2026, 3, 11, 0, 30, 0, 0, time.UTC)
	flipped, err := f.service.ActivateDueCheckIns(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)
	assert.Equal(t, models.BookedResourceStatus, room.Status)
}
