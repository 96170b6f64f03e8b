package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	cases := map[string]time.Time{
		"2026-05-01":                time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		"2026-05-01T10:30:00":       time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		"2026-05-01T10:30":          time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		"2026-05-01 10:30:00":       time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		"2026-05-01T10:30:00.5":     time.Date(2026, 5, 1, 10, 30, 0, 500000000, time.UTC),
		"2026-05-01T12:30:00+02:00": time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
		"2026-05-01T10:30:00Z":      time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseISODate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s", in, got)
	}

	for _, bad := range []string{"", "tomorrow", "01/05/2026", "2026-13-01"} {
		_, err := ParseISODate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

type internshipForm struct {
	Title    string `json:"title" validate:"required"`
	LastDate string `json:"last_date" validate:"required,iso8601"`
	Status   string `json:"status" validate:"omitempty,application_status"`
	Role     string `json:"role" validate:"omitempty,user_role"`
}

func TestCustomValidatorsAndMessages(t *testing.T) {
	v := validator.New()
	RegisterValidators(v)

	err := v.Struct(internshipForm{LastDate: "soon", Status: "HIRED", Role: "guest"})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Contains(t, msgs, "title is required")
	assert.Contains(t, msgs, "Invalid date format")
	assert.Contains(t, msgs, "Invalid status")
	assert.Contains(t, msgs, "Invalid role")

	assert.NoError(t, v.Struct(internshipForm{Title: "x", LastDate: "2026-01-01", Status: "SELECTED", Role: "company"}))
}

func TestFormatNonValidationError(t *testing.T) {
	assert.Equal(t, []string{"Invalid request body"}, FormatValidationErrors(errors.New("unexpected EOF")))
}
