package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OccupantClassification string

const (
	WalkInOccupant    OccupantClassification = "WALK_IN"
	CorporateOccupant OccupantClassification = "CORPORATE"
	AgencyOccupant    OccupantClassification = "AGENCY"
	OnlineOccupant    OccupantClassification = "ONLINE"
)

// Occupant is the guest/customer snapshot taken at reservation time. A fresh
// row is created per reservation and never updated in place, so historical
// reservations for the same phone number stay intact.
type Occupant struct {
	ID               uuid.UUID              `gorm:"type:uuid;primary_key;" json:"id"`
	FullName         string                 `gorm:"not null" json:"full_name"`
	Phone            string                 `gorm:"not null;index" json:"phone"`
	Email            *string                `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address          *string                `gorm:"type:text" json:"address,omitempty"`
	IDDocumentType   *string                `gorm:"type:varchar(50)" json:"id_document_type,omitempty"`
	IDDocumentNumber *string                `gorm:"type:varchar(100)" json:"id_document_number,omitempty"`
	Classification   OccupantClassification `gorm:"type:varchar(20);not null;default:'WALK_IN'" json:"classification"`

	CreatedBy *string        `json:"created_by"` // nil for public-channel bookings
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Occupant) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
