package repositories

import (
	"errors"
	"fmt"
	"time"

	"hotel-management-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	UpsertSlot(tx *gorm.DB, slot *models.ReservationSlot) error
	ReleaseByReservation(tx *gorm.DB, reservationID uuid.UUID) error
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

// UpsertSlot creates the slot for (resource, date, type) or re-claims it when
// a released slot row already exists. A row held by a live reservation
// surfaces the unique-index violation to the caller, which maps it to a date
// conflict — the database is the final arbiter between two concurrent
// bookings of the same day.
func (r *slotRepository) UpsertSlot(tx *gorm.DB, slot *models.ReservationSlot) error {
	var existing models.ReservationSlot
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Where("resource_id = ? AND slot_date = ? AND slot_type = ?",
			slot.ResourceID, slot.SlotDate.Format("2006-01-02"), slot.SlotType).
		First(&existing).Error

	if err == nil {
		if !existing.IsAvailable {
			return fmt.Errorf("slot for resource %s on %s is already taken",
				slot.ResourceID, slot.SlotDate.Format("2006-01-02"))
		}
		existing.ReservationID = slot.ReservationID
		existing.PriceSnapshot = slot.PriceSnapshot
		existing.IsAvailable = false
		if saveErr := tx.Save(&existing).Error; saveErr != nil {
			return fmt.Errorf("failed to re-claim slot: %w", saveErr)
		}
		*slot = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing slot: %w", err)
	}

	slot.IsAvailable = false
	if createErr := tx.Create(slot).Error; createErr != nil {
		return fmt.Errorf("failed to create slot: %w", createErr)
	}
	return nil
}

// ReleaseByReservation frees every slot held by a reservation, on checkout or
// cancellation.
func (r *slotRepository) ReleaseByReservation(tx *gorm.DB, reservationID uuid.UUID) error {
	return tx.Model(&models.ReservationSlot{}).
		Where("reservation_id = ?", reservationID).
		Updates(map[string]interface{}{
			"is_available": true,
			"updated_at":   time.Now(),
		}).Error
}
