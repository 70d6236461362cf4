package httperr

import "net/http"

type codeInfo struct {
	status  int
	message string
}

var codes = map[string]codeInfo{
	CodeValidationFailed: {http.StatusBadRequest, "Some fields are invalid."},
	CodeInvalidRequest:   {http.StatusBadRequest, "Invalid request."},
	CodeUnauthorized:     {http.StatusUnauthorized, "Session expired or missing."},
	CodeForbidden:        {http.StatusForbidden, "Not allowed."},

	"invalid_time":           {http.StatusBadRequest, "Time must be HH:MM on a 30 minute boundary."},
	"invalid_date":           {http.StatusBadRequest, "Date must be YYYY-MM-DD."},
	"invalid_date_range":     {http.StatusBadRequest, "Invalid date range."},
	"invalid_slot":           {http.StatusBadRequest, "Slot must be between 1 and 48."},
	"invalid_duration":       {http.StatusBadRequest, "Duration must be a positive multiple of 30 minutes."},
	"invalid_business_hours": {http.StatusBadRequest, "Opening time must be before closing time."},
	"invalid_weekday":        {http.StatusBadRequest, "Unknown weekday."},
	"invalid_alias":          {http.StatusBadRequest, "Alias may contain lowercase letters, digits and dashes."},
	"invalid_phone":          {http.StatusBadRequest, "Invalid phone number."},
	"invalid_email":          {http.StatusBadRequest, "Invalid e-mail address."},
	"invalid_email_domain":   {http.StatusBadRequest, "The e-mail domain does not look valid."},
	"invalid_timezone":       {http.StatusBadRequest, "Unknown timezone."},
	"invalid_picture":        {http.StatusBadRequest, "Picture must be a JPEG, PNG or WebP image up to 5 MB."},
	"required":               {http.StatusBadRequest, "This field is required."},
	"too_long":               {http.StatusBadRequest, "This field is too long."},
	"invalid_credentials":    {http.StatusUnauthorized, "Invalid credentials."},
	"invalid_google_token":   {http.StatusUnauthorized, "Google sign-in could not be verified."},

	"company_not_found":  {http.StatusNotFound, "Company not found."},
	"employee_not_found": {http.StatusNotFound, "Employee not found."},
	"work_not_found":     {http.StatusNotFound, "Service not found."},
	"booking_not_found":  {http.StatusNotFound, "Booking not found."},
	"user_not_found":     {http.StatusNotFound, "User not found."},

	"company_already_registered": {http.StatusConflict, "This account already owns a company."},
	"company_required":           {http.StatusConflict, "Register a company first."},
	"alias_taken":                {http.StatusConflict, "This alias is already in use."},
	"email_taken":                {http.StatusConflict, "This e-mail is already registered."},
	"employee_inactive":          {http.StatusConflict, "This employee is not taking bookings."},
	"work_inactive":              {http.StatusConflict, "This service is not available."},
	"work_not_assigned":          {http.StatusConflict, "This employee does not perform the selected service."},
	"outside_business_hours":     {http.StatusConflict, "Outside business hours."},
	"too_soon":                   {http.StatusConflict, "This time is too close to now."},
	"time_conflict":              {http.StatusConflict, "This time is already booked."},
	"slot_busy":                  {http.StatusConflict, "Another booking for this employee is in progress, try again."},
	"invalid_state":              {http.StatusConflict, "The booking cannot change to this state."},

	"rate_limited":        {http.StatusTooManyRequests, "Too many requests, try again shortly."},
	"storage_unavailable": {http.StatusServiceUnavailable, "Picture storage is not configured."},
}

// StatusFor maps a business code to its HTTP status. Unknown codes are client errors.
func StatusFor(code string) int {
	if info, ok := codes[code]; ok {
		return info.status
	}
	return http.StatusBadRequest
}

func MessageFor(code string) string {
	if info, ok := codes[code]; ok {
		return info.message
	}
	return code
}
