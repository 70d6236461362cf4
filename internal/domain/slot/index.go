package slot

import "github.com/BruksfildServices01/booking-api/internal/httperr"

// IndexOf converts a slot start in minutes to the 1-based startOnSlot
// used in booking submissions: hours*2 + (minutes == 30 ? 1 : 0) + 1.
func IndexOf(minutes int) (int, error) {
	if minutes < 0 || minutes >= MinutesPerDay || minutes%StepMinutes != 0 {
		return 0, httperr.ErrField("startOnSlot", "invalid_slot")
	}

	h, m := minutes/60, minutes%60
	idx := h*2 + 1
	if m == 30 {
		idx++
	}
	return idx, nil
}

// Index is IndexOf for an "HH:MM" string.
func Index(hm string) (int, error) {
	m, err := ParseAligned(hm)
	if err != nil {
		return 0, err
	}
	return IndexOf(m)
}

// StartMinute is the inverse of IndexOf.
func StartMinute(index int) (int, error) {
	if index < 1 || index > SlotsPerDay {
		return 0, httperr.ErrField("startOnSlot", "invalid_slot")
	}
	return (index - 1) * StepMinutes, nil
}

// TimeOf returns the "HH:MM" start of a 1-based slot index.
func TimeOf(index int) (string, error) {
	m, err := StartMinute(index)
	if err != nil {
		return "", err
	}
	return FormatHM(m), nil
}
