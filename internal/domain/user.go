package domain

import (
	"context"
	"time"
)

const (
	RoleStudent = "student"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterInput carries the registration form. FullName is required for
// students, CompanyName for companies.
type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	FullName    string
	CompanyName string
	Description string
}

// UserSummary is the user object returned next to an issued token.
type UserSummary struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	FullName    *string `json:"full_name,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// TokenIssuer is the part of the token manager the auth usecase needs.
type TokenIssuer interface {
	CreateToken(userID int64, email, role string) (string, error)
}

type UserRepository interface {
	// CreateWithProfile inserts the user and, when given, its student or
	// company profile in a single transaction. IDs are written back.
	CreateWithProfile(ctx context.Context, user *User, student *StudentProfile, company *CompanyProfile) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetActiveByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
