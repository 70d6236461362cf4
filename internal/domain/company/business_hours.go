// Package company holds company level rules: weekly business hours and
// public alias format.
package company

import (
	"regexp"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// Day is one weekday entry as exchanged with clients.
type Day struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// Week maps lowercase weekday names ("monday") to their hours.
type Week map[string]Day

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// Normalize applies the closed-day convention: a closed day has no times.
func (d Day) Normalize() Day {
	if !d.IsOpen {
		return Day{}
	}
	d.OpenTime = strings.TrimSpace(d.OpenTime)
	d.CloseTime = strings.TrimSpace(d.CloseTime)
	return d
}

// Validate checks an open day: both times on slot boundaries, open before close.
// Field names are prefixed with the weekday so clients can flag the row.
func (d Day) Validate(weekday string) []httperr.FieldError {
	if !d.IsOpen {
		return nil
	}

	var errs []httperr.FieldError

	open, err := slot.ParseAligned(d.OpenTime)
	if err != nil {
		errs = append(errs, httperr.FieldError{Field: weekday + ".openTime", Code: "invalid_time"})
	}
	close, err2 := slot.ParseAligned(d.CloseTime)
	if err2 != nil {
		errs = append(errs, httperr.FieldError{Field: weekday + ".closeTime", Code: "invalid_time"})
	}

	if err == nil && err2 == nil && open >= close {
		errs = append(errs, httperr.FieldError{Field: weekday + ".closeTime", Code: "invalid_business_hours"})
	}

	return errs
}

// ToModels validates a full week and converts it into rows for the company.
// Weekdays missing from the input are stored as closed.
func (w Week) ToModels(companyID uint) ([]models.BusinessHours, error) {
	var errs []httperr.FieldError

	for name := range w {
		if _, ok := ParseWeekday(name); !ok {
			errs = append(errs, httperr.FieldError{Field: name, Code: "invalid_weekday"})
		}
	}

	rows := make([]models.BusinessHours, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := WeekdayName(wd)
		day := lookup(w, name).Normalize()

		errs = append(errs, day.Validate(name)...)

		rows = append(rows, models.BusinessHours{
			CompanyID: companyID,
			Weekday:   int(wd),
			IsOpen:    day.IsOpen,
			OpenTime:  day.OpenTime,
			CloseTime: day.CloseTime,
		})
	}

	if len(errs) > 0 {
		return nil, httperr.ErrValidation(errs...)
	}
	return rows, nil
}

func lookup(w Week, name string) Day {
	for k, d := range w {
		if strings.EqualFold(k, name) {
			return d
		}
	}
	return Day{}
}

// FromModels renders stored rows as a full week, closed where missing.
func FromModels(rows []models.BusinessHours) Week {
	week := make(Week, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		week[WeekdayName(wd)] = Day{}
	}
	for _, r := range rows {
		if r.Weekday < 0 || r.Weekday > 6 {
			continue
		}
		week[WeekdayName(time.Weekday(r.Weekday))] = Day{
			IsOpen:    r.IsOpen,
			OpenTime:  r.OpenTime,
			CloseTime: r.CloseTime,
		}.Normalize()
	}
	return week
}

// WindowOf converts a stored row into a slot window. Closed or corrupt rows report false.
func WindowOf(bh *models.BusinessHours) (slot.Window, bool) {
	if bh == nil || !bh.IsOpen {
		return slot.Window{}, false
	}
	open, err := slot.ParseAligned(bh.OpenTime)
	if err != nil {
		return slot.Window{}, false
	}
	close, err := slot.ParseAligned(bh.CloseTime)
	if err != nil || close <= open {
		return slot.Window{}, false
	}
	return slot.Window{Open: open, Close: close}, true
}

var aliasPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// NormalizeAlias lowercases and trims an alias, reporting whether it is usable in URLs.
func NormalizeAlias(alias string) (string, bool) {
	a := strings.ToLower(strings.TrimSpace(alias))
	return a, len(a) >= 3 && len(a) <= 100 && aliasPattern.MatchString(a)
}
