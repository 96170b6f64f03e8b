package domain

import (
	"context"
	"time"
)

// Application statuses
const (
	StatusApplied     = "APPLIED"
	StatusShortlisted = "SHORTLISTED"
	StatusRejected    = "REJECTED"
	StatusSelected    = "SELECTED"
)

var applicationStatuses = map[string]bool{
	StatusApplied:     true,
	StatusShortlisted: true,
	StatusRejected:    true,
	StatusSelected:    true,
}

func ValidStatus(status string) bool {
	return applicationStatuses[status]
}

// CanTransition reports whether an application may move from one status to
// another. Every valid status is currently reachable from every other one,
// and no status is terminal.
func CanTransition(from, to string) bool {
	return ValidStatus(from) && ValidStatus(to)
}

type Application struct {
	ID           int64     `json:"id"`
	InternshipID int64     `json:"internship_id"`
	StudentID    int64     `json:"student_id"`
	ResumePath   *string   `json:"resume_path"`
	CoverLetter  string    `json:"cover_letter"`
	Status       string    `json:"status"`
	AppliedAt    time.Time `json:"applied_at"`

	// Joined data for list responses
	InternshipTitle   string `json:"internship_title,omitempty"`
	CompanyName       string `json:"company_name,omitempty"`
	StudentName       string `json:"student_name,omitempty"`
	StudentUniversity string `json:"student_university,omitempty"`
	StudentMajor      string `json:"student_major,omitempty"`
}

type ApplicationRepository interface {
	// Create inserts the application. A duplicate (internship, student) pair
	// is reported as a conflict, never as a raw constraint error.
	Create(ctx context.Context, app *Application) error
	Exists(ctx context.Context, internshipID, studentID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByStudent(ctx context.Context, studentID int64) ([]Application, error)
	ListByInternship(ctx context.Context, internshipID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type ApplicationUsecase interface {
	// Student operations
	Apply(ctx context.Context, userID, internshipID int64, coverLetter string) (*Application, error)
	MyApplications(ctx context.Context, userID int64) ([]Application, error)

	// Company operations
	ListForInternship(ctx context.Context, userID, internshipID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID int64, status string) error
}
