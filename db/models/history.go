package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HistoryAction string

const (
	CreatedHistoryAction         HistoryAction = "CREATED"
	UpdatedHistoryAction         HistoryAction = "UPDATED"
	StatusChangedHistoryAction   HistoryAction = "STATUS_CHANGED"
	PaymentRecordedHistoryAction HistoryAction = "PAYMENT_RECORDED"
	CancelledHistoryAction       HistoryAction = "CANCELLED"
)

// FieldDiff is one field-level change recorded in a history entry.
type FieldDiff struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// HistoryEntry is one immutable audit record of a reservation mutation.
// Append-only: no UpdatedAt, no soft delete, never modified after insert.
type HistoryEntry struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key;" json:"id"`
	ReservationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"reservation_id"`
	Action        HistoryAction `gorm:"type:varchar(30);not null;index" json:"action"`

	// Nil for system or public-channel actions.
	ActorID *string `gorm:"index" json:"actor_id"`

	// Ordered list of FieldDiff, serialized as JSON.
	Changes datatypes.JSON `gorm:"type:jsonb" json:"changes"`

	Note string `gorm:"type:text" json:"note"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (h *HistoryEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
