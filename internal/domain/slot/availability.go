package slot

// Interval is an occupied stretch of a day, in minutes since midnight.
type Interval struct {
	Start    int
	Duration int
}

func (i Interval) End() int {
	return i.Start + i.Duration
}

// Window is one day's business hours.
type Window struct {
	Open  int
	Close int
}

// Request describes one availability computation.
type Request struct {
	Window   Window
	Duration int
	Booked   []Interval

	// NotBefore drops starts earlier than this minute (same-day minimum notice).
	NotBefore int
}

// Fits reports whether a booking of duration minutes may start at s.
//
// s is rejected when it falls inside an existing booking, when the new
// booking would run past closing, or when an existing booking starts
// strictly inside the new one.
func Fits(s, duration int, w Window, booked []Interval) bool {
	if duration <= 0 || s < w.Open || s+duration > w.Close {
		return false
	}

	end := s + duration
	for _, b := range booked {
		if s >= b.Start && s < b.End() {
			return false
		}
		if b.Start > s && b.Start < end {
			return false
		}
	}
	return true
}

// AvailableStarts returns every grid start inside the window that Fits.
// The result is ascending and never nil.
func AvailableStarts(req Request) []int {
	out := []int{}
	if req.Duration <= 0 {
		return out
	}

	for _, s := range Starts(req.Window.Open, req.Window.Close, StepMinutes) {
		if s < req.NotBefore {
			continue
		}
		if Fits(s, req.Duration, req.Window, req.Booked) {
			out = append(out, s)
		}
	}
	return out
}

// TimeSlot is the presentation form returned to clients.
type TimeSlot struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	StartOnSlot int    `json:"startOnSlot"`
}

// Present formats starts for a booking of duration minutes.
func Present(starts []int, duration int) []TimeSlot {
	out := make([]TimeSlot, 0, len(starts))
	for _, s := range starts {
		idx, err := IndexOf(s)
		if err != nil {
			continue
		}
		out = append(out, TimeSlot{
			Start:       FormatHM(s),
			End:         FormatHM(s + duration),
			StartOnSlot: idx,
		})
	}
	return out
}
