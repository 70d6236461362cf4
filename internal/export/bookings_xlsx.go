// Package export renders booking reports as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

const sheetName = "Bookings"

var columns = []string{
	"ID", "Date", "Start", "End", "Slot", "Status",
	"Employee", "Service", "Customer", "Customer email", "Price", "Notes",
}

// BookingsXLSX writes one row per booking with times rendered in loc.
func BookingsXLSX(w io.Writer, bookings []models.Booking, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{StyleID: bold, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, b := range bookings {
		start := b.StartTime.In(loc).Format("15:04")
		end := b.EndTime.In(loc).Format("15:04")

		var employee, work, customer, email string
		var price float64
		if b.Employee != nil {
			employee = b.Employee.Name
		}
		if b.Work != nil {
			work = b.Work.Name
			price = b.Work.Price
		}
		if b.Customer != nil {
			customer = b.Customer.Name
			email = b.Customer.Email
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			b.ID, b.BookingDate, start, end, b.StartOnSlot, b.Status,
			employee, work, customer, email, price, b.Notes,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
