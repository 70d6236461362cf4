package httperr

import "errors"

// BusinessError is an expected failure of a domain rule. Code is the
// machine readable identifier returned to clients, Field names the input
// that caused it when there is one.
type BusinessError struct {
	Code   string
	Field  string
	Fields []FieldError
}

func (e BusinessError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Code
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrField is a business error bound to one request field.
func ErrField(field, code string) error {
	return BusinessError{Code: code, Field: field}
}

// ErrValidation groups several field errors into one failure.
func ErrValidation(fields ...FieldError) error {
	return BusinessError{Code: CodeValidationFailed, Fields: fields}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
