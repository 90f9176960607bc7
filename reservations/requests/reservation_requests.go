package requests

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hotel-management-backend/db/models"
	"hotel-management-backend/reservations/services"
)

// OccupantRequest is the guest snapshot submitted with a booking.
type OccupantRequest struct {
	FullName         string  `json:"full_name"`
	Phone            string  `json:"phone"`
	Email            *string `json:"email,omitempty"`
	Address          *string `json:"address,omitempty"`
	IDDocumentType   *string `json:"id_document_type,omitempty"`
	IDDocumentNumber *string `json:"id_document_number,omitempty"`
	Classification   string  `json:"classification,omitempty"` // WALK_IN, CORPORATE, AGENCY, ONLINE
}

// CreateReservationRequest is the staff create-booking body. Unknown fields
// are ignored by the parser; everything used downstream is validated here.
type CreateReservationRequest struct {
	ResourceIDs   []uuid.UUID      `json:"resource_ids"`
	Occupant      OccupantRequest  `json:"occupant"`
	CheckIn       string           `json:"check_in"`  // RFC3339 or YYYY-MM-DD
	CheckOut      string           `json:"check_out"` // RFC3339 or YYYY-MM-DD
	GuestCount    int              `json:"guest_count"`
	Discount      decimal.Decimal  `json:"discount"`
	AdvancePaid   decimal.Decimal  `json:"advance_paid"`
	TaxApplicable bool             `json:"tax_applicable"`
	TaxRate       *decimal.Decimal `json:"tax_rate,omitempty"`
	Note          *string          `json:"note,omitempty"`
}

// Validate performs boundary validation before the request reaches the
// orchestrator.
func (r *CreateReservationRequest) Validate() error {
	if len(r.ResourceIDs) == 0 {
		return services.NewValidationError("resource_ids is required")
	}
	if r.Occupant.FullName == "" {
		return services.NewValidationError("occupant.full_name is required")
	}
	if r.Occupant.Phone == "" {
		return services.NewValidationError("occupant.phone is required")
	}
	if r.CheckIn == "" || r.CheckOut == "" {
		return services.NewValidationError("check_in and check_out are required")
	}
	return nil
}

// ToInput converts the request to the orchestrator's input type.
func (r *CreateReservationRequest) ToInput(channel models.BookingChannel, actorID *string) services.CreateReservationInput {
	classification := models.OccupantClassification(r.Occupant.Classification)
	if classification == "" {
		if channel == models.OnlineChannel {
			classification = models.OnlineOccupant
		} else {
			classification = models.WalkInOccupant
		}
	}
	return services.CreateReservationInput{
		ResourceIDs: r.ResourceIDs,
		Occupant: services.OccupantInput{
			FullName:         r.Occupant.FullName,
			Phone:            r.Occupant.Phone,
			Email:            r.Occupant.Email,
			Address:          r.Occupant.Address,
			IDDocumentType:   r.Occupant.IDDocumentType,
			IDDocumentNumber: r.Occupant.IDDocumentNumber,
			Classification:   classification,
		},
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		GuestCount:    r.GuestCount,
		Discount:      r.Discount,
		AdvancePaid:   r.AdvancePaid,
		TaxApplicable: r.TaxApplicable,
		TaxRate:       r.TaxRate,
		Channel:       channel,
		ActorID:       actorID,
		Note:          r.Note,
	}
}

// UpdateReservationRequest carries partial updates; nil leaves a field as is.
type UpdateReservationRequest struct {
	CheckIn    *string    `json:"check_in,omitempty"`
	CheckOut   *string    `json:"check_out,omitempty"`
	GuestCount *int       `json:"guest_count,omitempty"`
	Status     *string    `json:"status,omitempty"`
	ResourceID *uuid.UUID `json:"resource_id,omitempty"`
	Note       *string    `json:"note,omitempty"`
}

// RecordPaymentRequest records an advance or settlement payment.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// CancelReservationRequest carries the optional cancellation reason.
type CancelReservationRequest struct {
	Reason string `json:"reason,omitempty"`
}
