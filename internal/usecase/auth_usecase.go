package usecase

import (
	"context"
	"errors"
	"strings"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/security"
)

type authUsecase struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	tokens      domain.TokenIssuer
}

func NewAuthUsecase(userRepo domain.UserRepository, profileRepo domain.ProfileRepository, tokens domain.TokenIssuer) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo, profileRepo: profileRepo, tokens: tokens}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.AuthResult, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" || in.Role == "" {
		return nil, apperror.Validation("Missing required fields")
	}
	if !domain.ValidRole(in.Role) {
		return nil, apperror.Validation("Invalid role")
	}

	var (
		student *domain.StudentProfile
		company *domain.CompanyProfile
		summary = domain.UserSummary{Email: email, Role: in.Role}
	)
	switch in.Role {
	case domain.RoleStudent:
		name := strings.TrimSpace(in.FullName)
		if name == "" {
			return nil, apperror.Validation("full_name is required")
		}
		student = &domain.StudentProfile{FullName: name}
		summary.FullName = &name
	case domain.RoleCompany:
		name := strings.TrimSpace(in.CompanyName)
		if name == "" {
			return nil, apperror.Validation("Company name required")
		}
		company = &domain.CompanyProfile{CompanyName: name, Description: in.Description}
		summary.CompanyName = &name
	}

	exists, err := u.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("Email already registered")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{Email: email, PasswordHash: hash, Role: in.Role}
	if err := u.userRepo.CreateWithProfile(ctx, user, student, company); err != nil {
		return nil, internal(err)
	}

	token, err := u.tokens.CreateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	summary.ID = user.ID
	return &domain.AuthResult{Token: token, User: summary}, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperror.Validation("Email and password required")
	}

	user, err := u.userRepo.GetActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}
	if !security.VerifyPassword(user.PasswordHash, password) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	summary := domain.UserSummary{ID: user.ID, Email: user.Email, Role: user.Role}
	switch user.Role {
	case domain.RoleStudent:
		if p, err := u.profileRepo.GetStudentByUserID(ctx, user.ID); err == nil {
			summary.FullName = &p.FullName
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
	case domain.RoleCompany:
		if p, err := u.profileRepo.GetCompanyByUserID(ctx, user.ID); err == nil {
			summary.CompanyName = &p.CompanyName
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
	}

	token, err := u.tokens.CreateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{Token: token, User: summary}, nil
}
