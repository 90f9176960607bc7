package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SlotType string

// Bookings currently hold FULL_DAY slots only; HALF_DAY and OVERNIGHT are
// reserved for finer-grained hall scheduling.
const (
	FullDaySlot   SlotType = "FULL_DAY"
	HalfDaySlot   SlotType = "HALF_DAY"
	OvernightSlot SlotType = "OVERNIGHT"
)

// ReservationSlot marks one calendar day of one resource as taken, with the
// rate snapshotted at booking time. A partial unique index on
// (resource_id, slot_date, slot_type) makes the database the final arbiter
// between two concurrent bookings of the same day (see ConfigureDatabase).
type ReservationSlot struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	ResourceID    uuid.UUID `gorm:"type:uuid;not null;index" json:"resource_id"`
	ReservationID uuid.UUID `gorm:"type:uuid;not null;index" json:"reservation_id"`

	SlotDate time.Time `gorm:"type:date;not null" json:"slot_date"`
	SlotType SlotType  `gorm:"type:varchar(20);not null;default:'FULL_DAY'" json:"slot_type"`

	PriceSnapshot decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price_snapshot"`

	// False while any non-terminal reservation references the slot.
	IsAvailable bool `gorm:"not null;default:false" json:"is_available"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *ReservationSlot) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
