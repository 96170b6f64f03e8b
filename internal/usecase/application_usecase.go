package usecase

import (
	"context"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
)

type applicationUsecase struct {
	appRepo        domain.ApplicationRepository
	internshipRepo domain.InternshipRepository
	profileRepo    domain.ProfileRepository
	now            func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	internshipRepo domain.InternshipRepository,
	profileRepo domain.ProfileRepository,
) domain.ApplicationUsecase {
	return NewApplicationUsecaseWithClock(appRepo, internshipRepo, profileRepo, time.Now)
}

func NewApplicationUsecaseWithClock(
	appRepo domain.ApplicationRepository,
	internshipRepo domain.InternshipRepository,
	profileRepo domain.ProfileRepository,
	now func() time.Time,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:        appRepo,
		internshipRepo: internshipRepo,
		profileRepo:    profileRepo,
		now:            now,
	}
}

// Apply submits an application for the calling student
func (u *applicationUsecase) Apply(ctx context.Context, userID, internshipID int64, coverLetter string) (*domain.Application, error) {
	student, err := u.profileRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "Student profile not found")
	}

	internship, err := u.internshipRepo.GetByID(ctx, internshipID)
	if err != nil {
		return nil, notFound(err, "Internship not found")
	}
	if !internship.IsActive {
		return nil, apperror.NotFound("Internship not found")
	}
	if u.now().After(internship.LastDate) {
		return nil, apperror.Domain("Application deadline has passed")
	}

	exists, err := u.appRepo.Exists(ctx, internshipID, student.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("Already applied to this internship")
	}

	app := &domain.Application{
		InternshipID: internshipID,
		StudentID:    student.ID,
		ResumePath:   student.ResumePath,
		CoverLetter:  coverLetter,
		Status:       domain.StatusApplied,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		return nil, internal(err)
	}
	return app, nil
}

func (u *applicationUsecase) MyApplications(ctx context.Context, userID int64) ([]domain.Application, error) {
	student, err := u.profileRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "Student profile not found")
	}
	apps, err := u.appRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ownedInternship verifies the caller's company owns the internship.
func (u *applicationUsecase) ownedInternship(ctx context.Context, userID, internshipID int64) error {
	company, err := u.profileRepo.GetCompanyByUserID(ctx, userID)
	if err != nil {
		return notFound(err, "Company profile not found")
	}
	internship, err := u.internshipRepo.GetByID(ctx, internshipID)
	if err != nil {
		return notFound(err, "Internship not found")
	}
	if internship.CompanyID != company.ID {
		return apperror.Forbidden("Not authorized")
	}
	return nil
}

func (u *applicationUsecase) ListForInternship(ctx context.Context, userID, internshipID int64) ([]domain.Application, error) {
	if err := u.ownedInternship(ctx, userID, internshipID); err != nil {
		return nil, err
	}
	apps, err := u.appRepo.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) UpdateStatus(ctx context.Context, userID, applicationID int64, status string) error {
	if status == "" {
		return apperror.Validation("Status is required")
	}
	if !domain.ValidStatus(status) {
		return apperror.Validation("Invalid status")
	}

	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return notFound(err, "Application not found")
	}
	if err := u.ownedInternship(ctx, userID, app.InternshipID); err != nil {
		return err
	}
	if !domain.CanTransition(app.Status, status) {
		return apperror.Domain("Invalid status")
	}

	if err := u.appRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return notFound(err, "Application not found")
	}
	return nil
}
