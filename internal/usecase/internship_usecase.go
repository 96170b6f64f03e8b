package usecase

import (
	"context"
	"strings"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/validation"
)

type internshipUsecase struct {
	internshipRepo domain.InternshipRepository
	profileRepo    domain.ProfileRepository
}

func NewInternshipUsecase(internshipRepo domain.InternshipRepository, profileRepo domain.ProfileRepository) domain.InternshipUsecase {
	return &internshipUsecase{internshipRepo: internshipRepo, profileRepo: profileRepo}
}

func parseLastDate(s string) (time.Time, error) {
	t, err := validation.ParseISODate(s)
	if err != nil {
		return time.Time{}, apperror.Validation("Invalid date format")
	}
	return t, nil
}

func (u *internshipUsecase) companyFor(ctx context.Context, userID int64) (*domain.CompanyProfile, error) {
	company, err := u.profileRepo.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "Company profile not found")
	}
	return company, nil
}

// owned loads an internship and checks the caller's company owns it.
func (u *internshipUsecase) owned(ctx context.Context, userID, id int64) (*domain.Internship, error) {
	company, err := u.companyFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	in, err := u.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Internship not found")
	}
	if in.CompanyID != company.ID {
		return nil, apperror.Forbidden("Not authorized")
	}
	return in, nil
}

func (u *internshipUsecase) Create(ctx context.Context, userID int64, in domain.InternshipInput) (*domain.Internship, error) {
	for _, f := range []struct{ name, value string }{
		{"title", in.Title}, {"description", in.Description}, {"last_date", in.LastDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, apperror.Validation(f.name + " is required")
		}
	}

	lastDate, err := parseLastDate(in.LastDate)
	if err != nil {
		return nil, err
	}

	company, err := u.companyFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	internship := &domain.Internship{
		CompanyID:    company.ID,
		Title:        in.Title,
		Description:  in.Description,
		Requirements: in.Requirements,
		Location:     in.Location,
		Stipend:      in.Stipend,
		LastDate:     lastDate,
		CompanyName:  company.CompanyName,
	}
	if err := u.internshipRepo.Create(ctx, internship); err != nil {
		return nil, internal(err)
	}
	return internship, nil
}

func (u *internshipUsecase) List(ctx context.Context, userID int64, role string, includeInactive bool) ([]domain.Internship, error) {
	filter := domain.InternshipFilter{}
	if role == domain.RoleCompany {
		company, err := u.companyFor(ctx, userID)
		if err != nil {
			return nil, err
		}
		filter.CompanyID = &company.ID
		filter.IncludeInactive = includeInactive
	}

	items, err := u.internshipRepo.List(ctx, filter)
	if err != nil {
		return nil, internal(err)
	}
	return items, nil
}

func (u *internshipUsecase) Get(ctx context.Context, id int64) (*domain.Internship, error) {
	in, err := u.internshipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Internship not found")
	}
	if !in.IsActive {
		return nil, apperror.NotFound("Internship not found")
	}
	return in, nil
}

func (u *internshipUsecase) Update(ctx context.Context, userID, id int64, upd domain.InternshipUpdate) error {
	in, err := u.owned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := notBlank("Title", upd.Title); err != nil {
		return err
	}
	if err := notBlank("Description", upd.Description); err != nil {
		return err
	}

	set(&in.Title, upd.Title)
	set(&in.Description, upd.Description)
	set(&in.Requirements, upd.Requirements)
	set(&in.Location, upd.Location)
	if upd.Stipend != nil {
		in.Stipend = upd.Stipend
	}
	if upd.LastDate != nil {
		if in.LastDate, err = parseLastDate(*upd.LastDate); err != nil {
			return err
		}
	}

	if err := u.internshipRepo.Update(ctx, in); err != nil {
		return notFound(err, "Internship not found")
	}
	return nil
}

func (u *internshipUsecase) Delete(ctx context.Context, userID, id int64) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.internshipRepo.Deactivate(ctx, id); err != nil {
		return notFound(err, "Internship not found")
	}
	return nil
}
