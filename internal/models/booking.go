package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint `gorm:"index" json:"companyId"`

	EmployeeID uint      `gorm:"index:idx_booking_employee_day" json:"employeeId"`
	Employee   *Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee,omitempty"`

	WorkID uint  `json:"workId"`
	Work   *Work `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"work,omitempty"`

	CustomerID uint  `gorm:"index" json:"customerId"`
	Customer   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	// BookingDate is the local calendar day in the company timezone, YYYY-MM-DD.
	BookingDate string    `gorm:"size:10;index:idx_booking_employee_day" json:"bookingDate"`
	StartTime   time.Time `json:"startDateTime"`
	EndTime     time.Time `json:"stopDateTime"`
	StartOnSlot int       `json:"startOnSlot"`

	Status string `gorm:"size:20;index" json:"status"`
	Notes  string `gorm:"size:255" json:"notes"`

	ConfirmedAt    *time.Time `json:"confirmedAt,omitempty"`
	CancelledAt    *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy    string     `gorm:"size:20" json:"cancelledBy,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	ReminderSentAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DurationMinutes is the booked length derived from the stored interval.
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime).Minutes())
}
