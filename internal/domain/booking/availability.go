package booking

import (
	"fmt"
	"time"
)

type AvailabilityInput struct {
	EmployeeID uint
	WorkID     uint
	Date       string // YYYY-MM-DD in the company timezone
}

// LockKey is the per employee, per day critical section for creation.
func LockKey(employeeID uint, date string) string {
	return fmt.Sprintf("booking:%d:%s", employeeID, date)
}

// MinuteOfDay is the local wall clock position of t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
