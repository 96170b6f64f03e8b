package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// E164-like phone: optional +, digits 7-15 length, spaces and dashes tolerated
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,18}[0-9]$`)
)

var ErrInvalidDate = errors.New("invalid date format")

// isoLayouts are the ISO-8601 shapes accepted for dates. Values without a
// zone are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseISODate parses an ISO-8601 date or timestamp.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("iso8601", ISO8601)
	_ = v.RegisterValidation("user_role", UserRole)
	_ = v.RegisterValidation("application_status", ApplicationStatus)
	_ = v.RegisterValidation("valid_phone", ValidPhone)

	// Report JSON field names instead of Go struct field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ISO8601 accepts empty values; pair it with required when needed.
func ISO8601(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := ParseISODate(val)
	return err == nil
}

func UserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "student", "company", "admin":
		return true
	}
	return false
}

func ApplicationStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "APPLIED", "SHORTLISTED", "REJECTED", "SELECTED":
		return true
	}
	return false
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}
