package domain

import (
	"context"
	"time"
)

type StudentProfile struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	FullName    string  `json:"full_name"`
	University  string  `json:"university"`
	Major       string  `json:"major"`
	YearOfStudy string  `json:"year_of_study"`
	Phone       string  `json:"phone"`
	ResumePath  *string `json:"resume_path,omitempty"`
}

type CompanyProfile struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Location    string `json:"location"`
}

// ProfileView is the caller's account merged with its role profile.
type ProfileView struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	FullName    *string `json:"full_name,omitempty"`
	University  *string `json:"university,omitempty"`
	Major       *string `json:"major,omitempty"`
	YearOfStudy *string `json:"year_of_study,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	ResumePath  *string `json:"resume_path,omitempty"`

	CompanyName *string `json:"company_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
	Location    *string `json:"location,omitempty"`
}

// ProfileUpdate is a partial update; nil fields keep their stored value.
// Student fields are ignored for companies and the other way round.
type ProfileUpdate struct {
	FullName    *string `json:"full_name"`
	University  *string `json:"university"`
	Major       *string `json:"major"`
	YearOfStudy *string `json:"year_of_study"`
	Phone       *string `json:"phone"`

	CompanyName *string `json:"company_name"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	Location    *string `json:"location"`
}

type ProfileRepository interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*StudentProfile, error)
	GetCompanyByUserID(ctx context.Context, userID int64) (*CompanyProfile, error)
	UpdateStudent(ctx context.Context, p *StudentProfile) error
	UpdateCompany(ctx context.Context, p *CompanyProfile) error
	SetResumePath(ctx context.Context, studentID int64, path string) error
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) error
}
