package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	PendingReservationStatus    ReservationStatus = "PENDING"
	ConfirmedReservationStatus  ReservationStatus = "CONFIRMED"
	CheckedInReservationStatus  ReservationStatus = "CHECKED_IN"
	CheckedOutReservationStatus ReservationStatus = "CHECKED_OUT"
	CancelledReservationStatus  ReservationStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s ReservationStatus) IsTerminal() bool {
	return s == CheckedOutReservationStatus || s == CancelledReservationStatus
}

type PaymentStatus string

const (
	PendingPayment PaymentStatus = "PENDING"
	PartialPayment PaymentStatus = "PARTIAL"
	PaidPayment    PaymentStatus = "PAID"
)

type BookingChannel string

const (
	StaffChannel  BookingChannel = "STAFF"
	OnlineChannel BookingChannel = "ONLINE"
)

// Reservation is the aggregate booking record. Exactly one resource per row;
// a multi-resource booking is N sibling rows sharing one occupant snapshot.
type Reservation struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Number string    `gorm:"uniqueIndex;not null" json:"number"` // e.g. RSV-000042, sortable

	// Short code a guest can quote to look up their own reservation without
	// authentication. Deliberately distinct from Number.
	ReferenceCode string `gorm:"uniqueIndex;not null" json:"reference_code"`

	ResourceID uuid.UUID `gorm:"type:uuid;not null;index" json:"resource_id"`
	Resource   Resource  `gorm:"foreignKey:ResourceID;references:ID" json:"resource"`
	OccupantID uuid.UUID `gorm:"type:uuid;not null;index" json:"occupant_id"`
	Occupant   Occupant  `gorm:"foreignKey:OccupantID;references:ID" json:"occupant"`

	Slots []ReservationSlot `gorm:"foreignKey:ReservationID" json:"slots,omitempty"`

	CheckIn    time.Time `gorm:"not null;index" json:"check_in"`
	CheckOut   time.Time `gorm:"not null;index" json:"check_out"`
	GuestCount int       `gorm:"not null;default:1" json:"guest_count"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount_amount"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	BalanceAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance_amount"`
	PaymentStatus  PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"payment_status"`

	Status  ReservationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Channel BookingChannel    `gorm:"type:varchar(10);not null;default:'STAFF'" json:"channel"`

	Note     *string   `gorm:"type:text" json:"note,omitempty"`
	BookedAt time.Time `gorm:"not null" json:"booked_at"`

	CreatedBy *string        `json:"created_by"` // nil for public-channel bookings
	UpdatedBy *string        `json:"updated_by"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.BookedAt.IsZero() {
		r.BookedAt = time.Now()
	}
	return nil
}
