package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-management-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(tx *gorm.DB, reservation *models.Reservation) error
	Save(tx *gorm.DB, reservation *models.Reservation) error
	GetByID(id uuid.UUID) (*models.Reservation, error)
	GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Reservation, error)
	GetByReferenceCode(code string) (*models.Reservation, error)
	FindOverlapping(tx *gorm.DB, resourceID uuid.UUID, checkIn, checkOut time.Time) (*models.Reservation, error)
	NextSequence(tx *gorm.DB) (int64, error)
	GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.Reservation, int64, error)
	ListStartingBy(t time.Time) ([]models.Reservation, error)
	ListOverdueCheckouts(t time.Time) ([]models.Reservation, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(tx *gorm.DB, reservation *models.Reservation) error {
	return tx.Create(reservation).Error
}

func (r *reservationRepository) Save(tx *gorm.DB, reservation *models.Reservation) error {
	return tx.Save(reservation).Error
}

func (r *reservationRepository) GetByID(id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.
		Preload("Resource").
		Preload("Occupant").
		Preload("Slots").
		First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

// GetByIDForUpdate loads a reservation under a row lock so a concurrent
// update or cancel of the same reservation serializes behind this one.
func (r *reservationRepository) GetByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		First(&reservation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) GetByReferenceCode(code string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.
		Preload("Resource").
		Preload("Occupant").
		First(&reservation, "reference_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

// FindOverlapping returns the first non-cancelled reservation of the resource
// whose interval overlaps [checkIn, checkOut) under the half-open rule:
// intervals conflict iff a < d AND c < b. A touching boundary (checkout equals
// the next check-in) is not a conflict, which permits same-day turnover.
// Must run inside the same transaction as the subsequent insert.
func (r *reservationRepository) FindOverlapping(tx *gorm.DB, resourceID uuid.UUID, checkIn, checkOut time.Time) (*models.Reservation, error) {
	var existing models.Reservation
	err := tx.
		Where("resource_id = ?", resourceID).
		Where("status NOT IN ?", []models.ReservationStatus{
			models.CancelledReservationStatus,
			models.CheckedOutReservationStatus,
		}).
		Where("check_in < ? AND ? < check_out", checkOut, checkIn).
		Order("check_in ASC").
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query overlapping reservations: %w", err)
	}
	return &existing, nil
}

// NextSequence computes the next reservation number sequence inside the
// creating transaction. Soft-deleted rows still hold their numbers, so the
// scan is unscoped; the unique index on `number` remains the final arbiter.
func (r *reservationRepository) NextSequence(tx *gorm.DB) (int64, error) {
	var max int64
	err := tx.Unscoped().
		Model(&models.Reservation{}).
		Select("COALESCE(MAX(CAST(SUBSTRING(number FROM 5) AS BIGINT)), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read reservation sequence: %w", err)
	}
	return max + 1, nil
}

// GetFiltered retrieves reservations with filtering and pagination for the
// staff listing and the reporting/export consumers.
func (r *reservationRepository) GetFiltered(pageSize int, offset int, filters map[string]string) ([]models.Reservation, int64, error) {
	var reservations []models.Reservation
	var total int64

	db := r.db.Model(&models.Reservation{})

	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "status":
			db = db.Where("status = ?", strings.ToUpper(value))
		case "payment_status":
			db = db.Where("payment_status = ?", strings.ToUpper(value))
		case "channel":
			db = db.Where("channel = ?", strings.ToUpper(value))
		case "resource_id":
			db = db.Where("resource_id = ?", value)
		case "start_date":
			db = db.Where("Date(check_in) >= ?", value)
		case "end_date":
			db = db.Where("Date(check_out) <= ?", value)
		case "search":
			db = db.Joins("JOIN occupants ON occupants.id = reservations.occupant_id").
				Where("reservations.number ILIKE ? OR reservations.reference_code ILIKE ? OR occupants.full_name ILIKE ? OR occupants.phone ILIKE ?",
					"%"+value+"%", "%"+value+"%", "%"+value+"%", "%"+value+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.
		Preload("Resource").
		Preload("Occupant").
		Order("booked_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}

// ListStartingBy returns confirmed reservations whose check-in is due, used
// by the scheduler to flip resources to BOOKED on check-in day.
func (r *reservationRepository) ListStartingBy(t time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.
		Where("status = ?", models.ConfirmedReservationStatus).
		Where("check_in <= ?", t).
		Find(&reservations).Error
	return reservations, err
}

// ListOverdueCheckouts returns checked-in reservations whose checkout has
// passed, so the scheduler can flag resources for release.
func (r *reservationRepository) ListOverdueCheckouts(t time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.
		Where("status = ?", models.CheckedInReservationStatus).
		Where("check_out < ?", t).
		Find(&reservations).Error
	return reservations, err
}
