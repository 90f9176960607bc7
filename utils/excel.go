package utils

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"hotel-management-backend/db/models"
)

// BuildReservationsWorkbook renders a filtered reservation list to an Excel
// workbook for the reporting/export consumer. Reads historical data only.
func BuildReservationsWorkbook(reservations []models.Reservation) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Reservations"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Number", "Reference", "Resource", "Guest", "Phone", "Check-In",
		"Check-Out", "Guests", "Subtotal", "Discount", "Tax", "Total",
		"Paid", "Balance", "Payment Status", "Status", "Channel", "Booked At",
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("error setting header %s: %w", header, err)
		}
	}

	for row, r := range reservations {
		values := []interface{}{
			r.Number,
			r.ReferenceCode,
			r.Resource.Code,
			r.Occupant.FullName,
			r.Occupant.Phone,
			r.CheckIn.Format("2006-01-02 15:04"),
			r.CheckOut.Format("2006-01-02 15:04"),
			r.GuestCount,
			r.Subtotal.StringFixed(2),
			r.DiscountAmount.StringFixed(2),
			r.TaxAmount.StringFixed(2),
			r.TotalAmount.StringFixed(2),
			r.PaidAmount.StringFixed(2),
			r.BalanceAmount.StringFixed(2),
			string(r.PaymentStatus),
			string(r.Status),
			string(r.Channel),
			r.BookedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("error writing row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}
