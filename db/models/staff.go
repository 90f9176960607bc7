package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRole string

const (
	AdminStaffRole     StaffRole = "ADMIN"
	ManagerStaffRole   StaffRole = "MANAGER"
	FrontDeskStaffRole StaffRole = "FRONT_DESK"
)

// Staff is a back-office account. Staff log in with email and password and
// act through the guarded API; their ID is the actor recorded on the audit
// trail.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"phone"`
	Password  string    `gorm:"not null" json:"-"`
	Role      StaffRole `gorm:"type:varchar(20);not null;default:'FRONT_DESK'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedBy   *string        `json:"created_by,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
