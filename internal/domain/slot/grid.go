// Package slot holds the half-hour scheduling model shared by business
// hours, availability and booking creation. Times are minutes since local
// midnight; "HH:MM" strings only exist at the edges.
package slot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
)

const (
	StepMinutes   = 30
	MinutesPerDay = 24 * 60
	SlotsPerDay   = MinutesPerDay / StepMinutes
)

// ParseHM converts "HH:MM" to minutes since midnight. "24:00" is accepted
// so a day can close at midnight.
func ParseHM(hm string) (int, error) {
	parts := strings.Split(strings.TrimSpace(hm), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, httperr.ErrBusiness("invalid_time")
	}

	return h*60 + m, nil
}

// FormatHM is the display transform for minutes since midnight.
func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseAligned parses "HH:MM" and requires it to sit on a slot boundary.
func ParseAligned(hm string) (int, error) {
	m, err := ParseHM(hm)
	if err != nil {
		return 0, err
	}
	if m%StepMinutes != 0 {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return m, nil
}

// Starts returns every step-aligned start in [open, close). A closed or
// inverted range yields an empty slice.
func Starts(open, close, step int) []int {
	if step <= 0 {
		step = StepMinutes
	}
	if close <= open {
		return []int{}
	}

	out := make([]int, 0, (close-open)/step)
	for m := open; m < close; m += step {
		out = append(out, m)
	}
	return out
}

// GenerateSlots lists the slot start times inside business hours.
func GenerateSlots(open, close string, stepMinutes int) ([]string, error) {
	if stepMinutes <= 0 {
		stepMinutes = StepMinutes
	}

	o, err := ParseHM(open)
	if err != nil {
		return nil, err
	}
	c, err := ParseHM(close)
	if err != nil {
		return nil, err
	}
	if o%stepMinutes != 0 || c%stepMinutes != 0 {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	starts := Starts(o, c, stepMinutes)
	out := make([]string, len(starts))
	for i, m := range starts {
		out[i] = FormatHM(m)
	}
	return out, nil
}

// DaySlots is the full 00:00 to 23:30 grid used by the business hours editor.
func DaySlots() []string {
	out, _ := GenerateSlots("00:00", "24:00", StepMinutes)
	return out
}
