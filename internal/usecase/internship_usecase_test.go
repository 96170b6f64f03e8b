package usecase_test

import (
	"context"
	"testing"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/internal/usecase"
	"internport-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInternshipCreate(t *testing.T) {
	internships := new(MockInternshipRepo)
	profiles := new(MockProfileRepo)
	uc := usecase.NewInternshipUsecase(internships, profiles)
	ctx := context.Background()

	profiles.On("GetCompanyByUserID", mock.Anything, int64(10)).
		Return(&domain.CompanyProfile{ID: 1, UserID: 10, CompanyName: "Acme"}, nil)
	internships.On("Create", mock.Anything, mock.AnythingOfType("*domain.Internship")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Internship).ID = 5 }).
		Return(nil)

	t.Run("parses the deadline as UTC", func(t *testing.T) {
		in, err := uc.Create(ctx, 10, domain.InternshipInput{Title: "Go", Description: "d", LastDate: "2030-01-31"})
		require.NoError(t, err)
		assert.Equal(t, int64(5), in.ID)
		assert.Equal(t, int64(1), in.CompanyID)
		assert.Equal(t, time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC), in.LastDate)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := uc.Create(ctx, 10, domain.InternshipInput{Title: "Go", Description: "d", LastDate: "next week"})
		assert.Equal(t, "Invalid date format", err.Error())
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := uc.Create(ctx, 10, domain.InternshipInput{Description: "d", LastDate: "2030-01-31"})
		assert.Equal(t, "title is required", err.Error())
	})
}

func TestInternshipOwnership(t *testing.T) {
	internships := new(MockInternshipRepo)
	profiles := new(MockProfileRepo)
	uc := usecase.NewInternshipUsecase(internships, profiles)
	ctx := context.Background()

	profiles.On("GetCompanyByUserID", mock.Anything, int64(20)).
		Return(&domain.CompanyProfile{ID: 2, UserID: 20, CompanyName: "Other"}, nil)
	internships.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Internship{ID: 5, CompanyID: 1, IsActive: true}, nil)
	internships.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

	title := "Hijacked"
	err := uc.Update(ctx, 20, 5, domain.InternshipUpdate{Title: &title})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	assert.Equal(t, "Not authorized", err.Error())

	err = uc.Delete(ctx, 20, 5)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	err = uc.Delete(ctx, 20, 404)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	internships.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	internships.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
}

func TestInternshipPartialUpdateKeepsFields(t *testing.T) {
	internships := new(MockInternshipRepo)
	profiles := new(MockProfileRepo)
	uc := usecase.NewInternshipUsecase(internships, profiles)

	profiles.On("GetCompanyByUserID", mock.Anything, int64(10)).Return(&domain.CompanyProfile{ID: 1}, nil)
	internships.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.Internship{ID: 5, CompanyID: 1, Title: "Go", Description: "old", Location: "Remote", IsActive: true}, nil)
	internships.On("Update", mock.Anything, mock.AnythingOfType("*domain.Internship")).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*domain.Internship)
			assert.Equal(t, "Go", in.Title)
			assert.Equal(t, "new", in.Description)
			assert.Equal(t, "Remote", in.Location)
		}).Return(nil)

	desc := "new"
	require.NoError(t, uc.Update(context.Background(), 10, 5, domain.InternshipUpdate{Description: &desc}))

	bad := "31/01/2030"
	err := uc.Update(context.Background(), 10, 5, domain.InternshipUpdate{LastDate: &bad})
	assert.Equal(t, "Invalid date format", err.Error())

	blank := " "
	err = uc.Update(context.Background(), 10, 5, domain.InternshipUpdate{Title: &blank})
	assert.Equal(t, "Title cannot be empty", err.Error())
	err = uc.Update(context.Background(), 10, 5, domain.InternshipUpdate{Description: &blank})
	assert.Equal(t, "Description cannot be empty", err.Error())
	internships.AssertNumberOfCalls(t, "Update", 1)
}

func TestInternshipGetHidesInactive(t *testing.T) {
	internships := new(MockInternshipRepo)
	uc := usecase.NewInternshipUsecase(internships, new(MockProfileRepo))

	internships.On("GetByID", mock.Anything, int64(5)).Return(&domain.Internship{ID: 5, IsActive: false}, nil)

	_, err := uc.Get(context.Background(), 5)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "Internship not found", err.Error())
}

func TestInternshipListScopesCompanies(t *testing.T) {
	internships := new(MockInternshipRepo)
	profiles := new(MockProfileRepo)
	uc := usecase.NewInternshipUsecase(internships, profiles)
	ctx := context.Background()

	companyID := int64(1)
	profiles.On("GetCompanyByUserID", mock.Anything, int64(10)).Return(&domain.CompanyProfile{ID: companyID}, nil)
	internships.On("List", mock.Anything, domain.InternshipFilter{CompanyID: &companyID, IncludeInactive: true}).
		Return([]domain.Internship{{ID: 1}, {ID: 2}}, nil)
	internships.On("List", mock.Anything, domain.InternshipFilter{}).Return([]domain.Internship{{ID: 1}}, nil)

	own, err := uc.List(ctx, 10, domain.RoleCompany, true)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	// Students cannot widen the listing.
	public, err := uc.List(ctx, 30, domain.RoleStudent, true)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}
