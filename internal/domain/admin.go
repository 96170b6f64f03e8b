package domain

import (
	"context"
	"time"
)

// AdminUser is a user row with its role display field
type AdminUser struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	FullName    *string   `json:"full_name,omitempty"`
	CompanyName *string   `json:"company_name,omitempty"`
}

// AdminInternship includes soft-deleted listings
type AdminInternship struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	CompanyName      string    `json:"company_name"`
	Location         string    `json:"location"`
	Stipend          *float64  `json:"stipend"`
	LastDate         time.Time `json:"last_date"`
	CreatedAt        time.Time `json:"created_at"`
	IsActive         bool      `json:"is_active"`
	ApplicationCount int64     `json:"application_count"`
}

type AdminApplication struct {
	ID              int64     `json:"id"`
	InternshipTitle string    `json:"internship_title"`
	CompanyName     string    `json:"company_name"`
	StudentName     string    `json:"student_name"`
	Status          string    `json:"status"`
	AppliedAt       time.Time `json:"applied_at"`
}

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers          int64            `json:"total_users"`
	UsersByRole         map[string]int64 `json:"users_by_role"`
	TotalInternships    int64            `json:"total_internships"`
	ActiveInternships   int64            `json:"active_internships"`
	TotalApplications   int64            `json:"total_applications"`
	ApplicationByStatus map[string]int64 `json:"applications_by_status"`
}

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// ExportFile is a rendered admin export
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type AdminRepository interface {
	ListUsers(ctx context.Context) ([]AdminUser, error)
	ListInternships(ctx context.Context) ([]AdminInternship, error)
	ListApplications(ctx context.Context) ([]AdminApplication, error)
	GetStats(ctx context.Context) (*AdminStats, error)
}

type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]AdminUser, error)
	ListInternships(ctx context.Context) ([]AdminInternship, error)
	ListApplications(ctx context.Context) ([]AdminApplication, error)
	GetStats(ctx context.Context) (*AdminStats, error)
	ExportApplications(ctx context.Context, format string) (*ExportFile, error)
}
