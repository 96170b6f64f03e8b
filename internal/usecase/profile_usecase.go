package usecase

import (
	"context"
	"errors"
	"strings"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
)

type profileUsecase struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
}

func NewProfileUsecase(userRepo domain.UserRepository, profileRepo domain.ProfileRepository) domain.ProfileUsecase {
	return &profileUsecase{userRepo: userRepo, profileRepo: profileRepo}
}

func (u *profileUsecase) GetProfile(ctx context.Context, userID int64) (*domain.ProfileView, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}

	view := &domain.ProfileView{Email: user.Email, Role: user.Role, CreatedAt: user.CreatedAt}
	switch user.Role {
	case domain.RoleStudent:
		p, err := u.profileRepo.GetStudentByUserID(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return view, nil
		}
		if err != nil {
			return nil, internal(err)
		}
		view.FullName = &p.FullName
		view.University = &p.University
		view.Major = &p.Major
		view.YearOfStudy = &p.YearOfStudy
		view.Phone = &p.Phone
		view.ResumePath = p.ResumePath
	case domain.RoleCompany:
		p, err := u.profileRepo.GetCompanyByUserID(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return view, nil
		}
		if err != nil {
			return nil, internal(err)
		}
		view.CompanyName = &p.CompanyName
		view.Description = &p.Description
		view.Website = &p.Website
		view.Location = &p.Location
	}
	return view, nil
}

// UpdateProfile applies the fields relevant to the caller's role. Admins
// have no profile, so the call is a no-op for them.
func (u *profileUsecase) UpdateProfile(ctx context.Context, userID int64, upd domain.ProfileUpdate) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return notFound(err, "User not found")
	}

	switch user.Role {
	case domain.RoleStudent:
		p, err := u.profileRepo.GetStudentByUserID(ctx, userID)
		if err != nil {
			return notFound(err, "Student profile not found")
		}
		if err := notBlank("Full name", upd.FullName); err != nil {
			return err
		}
		set(&p.FullName, upd.FullName)
		set(&p.University, upd.University)
		set(&p.Major, upd.Major)
		set(&p.YearOfStudy, upd.YearOfStudy)
		set(&p.Phone, upd.Phone)
		if err := u.profileRepo.UpdateStudent(ctx, p); err != nil {
			return internal(err)
		}
	case domain.RoleCompany:
		p, err := u.profileRepo.GetCompanyByUserID(ctx, userID)
		if err != nil {
			return notFound(err, "Company profile not found")
		}
		if err := notBlank("Company name", upd.CompanyName); err != nil {
			return err
		}
		set(&p.CompanyName, upd.CompanyName)
		set(&p.Description, upd.Description)
		set(&p.Website, upd.Website)
		set(&p.Location, upd.Location)
		if err := u.profileRepo.UpdateCompany(ctx, p); err != nil {
			return internal(err)
		}
	}
	return nil
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// notBlank rejects a required field sent as an empty string. Absent fields
// are left alone.
func notBlank(label string, v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return apperror.Validation(label + " cannot be empty")
	}
	return nil
}
