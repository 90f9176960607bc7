package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ResourceType string

const (
	RoomResourceType ResourceType = "ROOM"
	HallResourceType ResourceType = "HALL"
)

type ResourceStatus string

const (
	AvailableResourceStatus   ResourceStatus = "AVAILABLE"
	BookedResourceStatus      ResourceStatus = "BOOKED"
	MaintenanceResourceStatus ResourceStatus = "MAINTENANCE"
)

// Resource is a bookable physical unit: a hotel room or a function hall.
// Never deleted while referenced by a reservation; soft delete only.
type Resource struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	Code        string          `gorm:"uniqueIndex;not null" json:"code"` // e.g. "R-101", "HALL-A"
	Name        string          `gorm:"not null" json:"name"`
	Type        ResourceType    `gorm:"type:varchar(10);not null;index" json:"type"`
	Category    string          `gorm:"type:varchar(50)" json:"category"` // e.g. DELUXE, STANDARD, CONFERENCE
	Capacity    int             `gorm:"not null;default:1" json:"capacity"`
	BaseRate    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"base_rate"` // per day
	Status      ResourceStatus  `gorm:"type:varchar(20);not null;default:'AVAILABLE';index" json:"status"`
	Floor       *string         `gorm:"type:varchar(20)" json:"floor,omitempty"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`

	CreatedBy string         `gorm:"not null" json:"created_by"`
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
