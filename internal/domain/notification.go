package domain

import (
	"context"
	"time"
)

type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers mail on a best-effort basis.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// DeadlineReminder is one (internship, applicant) pair due for a reminder.
type DeadlineReminder struct {
	InternshipID int64
	Title        string
	LastDate     time.Time
	StudentEmail string
}

// CompanySummary is the number of applications a company received since a
// point in time.
type CompanySummary struct {
	CompanyID       int64
	CompanyName     string
	Email           string
	NewApplications int64
}

type NotificationRepository interface {
	// ListDeadlineReminders returns applicants of active internships whose
	// deadline lies in (from, to].
	ListDeadlineReminders(ctx context.Context, from, to time.Time) ([]DeadlineReminder, error)
	// CountNewApplicationsByCompany only returns companies with at least one
	// application since the given time.
	CountNewApplicationsByCompany(ctx context.Context, since time.Time) ([]CompanySummary, error)
}
