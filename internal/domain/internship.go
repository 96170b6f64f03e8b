package domain

import (
	"context"
	"time"
)

type Internship struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Location     string    `json:"location"`
	Stipend      *float64  `json:"stipend"`
	LastDate     time.Time `json:"last_date"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`

	// Joined from company_profiles on reads
	CompanyName        string `json:"company_name,omitempty"`
	CompanyDescription string `json:"company_description,omitempty"`
}

// InternshipInput is the create form. LastDate is an ISO-8601 string.
type InternshipInput struct {
	Title        string
	Description  string
	Requirements string
	Location     string
	Stipend      *float64
	LastDate     string
}

// InternshipUpdate is a partial update; nil fields keep their stored value.
type InternshipUpdate struct {
	Title        *string
	Description  *string
	Requirements *string
	Location     *string
	Stipend      *float64
	LastDate     *string
}

type InternshipFilter struct {
	CompanyID       *int64
	IncludeInactive bool
}

type InternshipRepository interface {
	Create(ctx context.Context, in *Internship) error
	// GetByID returns the internship regardless of its active flag.
	GetByID(ctx context.Context, id int64) (*Internship, error)
	List(ctx context.Context, filter InternshipFilter) ([]Internship, error)
	Update(ctx context.Context, in *Internship) error
	Deactivate(ctx context.Context, id int64) error
}

type InternshipUsecase interface {
	Create(ctx context.Context, userID int64, in InternshipInput) (*Internship, error)
	List(ctx context.Context, userID int64, role string, includeInactive bool) ([]Internship, error)
	Get(ctx context.Context, id int64) (*Internship, error)
	Update(ctx context.Context, userID, id int64, upd InternshipUpdate) error
	Delete(ctx context.Context, userID, id int64) error
}
