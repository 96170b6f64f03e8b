package usecase_test

import (
	"context"
	"io"
	"strconv"

	"internport-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) CreateWithProfile(ctx context.Context, user *domain.User, student *domain.StudentProfile, company *domain.CompanyProfile) error {
	return m.Called(ctx, user, student, company).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetStudentByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentProfile), args.Error(1)
}

func (m *MockProfileRepo) GetCompanyByUserID(ctx context.Context, userID int64) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}

func (m *MockProfileRepo) UpdateStudent(ctx context.Context, p *domain.StudentProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepo) UpdateCompany(ctx context.Context, p *domain.CompanyProfile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepo) SetResumePath(ctx context.Context, studentID int64, path string) error {
	return m.Called(ctx, studentID, path).Error(0)
}

type MockInternshipRepo struct {
	mock.Mock
}

func (m *MockInternshipRepo) Create(ctx context.Context, in *domain.Internship) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockInternshipRepo) GetByID(ctx context.Context, id int64) (*domain.Internship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Internship), args.Error(1)
}

func (m *MockInternshipRepo) List(ctx context.Context, filter domain.InternshipFilter) ([]domain.Internship, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Internship), args.Error(1)
}

func (m *MockInternshipRepo) Update(ctx context.Context, in *domain.Internship) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockInternshipRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, internshipID, studentID int64) (bool, error) {
	args := m.Called(ctx, internshipID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ListByStudent(ctx context.Context, studentID int64) ([]domain.Application, error) {
	args := m.Called(ctx, studentID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) ListByInternship(ctx context.Context, internshipID int64) ([]domain.Application, error) {
	args := m.Called(ctx, internshipID)
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) ListUsers(ctx context.Context) ([]domain.AdminUser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AdminUser), args.Error(1)
}

func (m *MockAdminRepo) ListInternships(ctx context.Context) ([]domain.AdminInternship, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AdminInternship), args.Error(1)
}

func (m *MockAdminRepo) ListApplications(ctx context.Context) ([]domain.AdminApplication, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AdminApplication), args.Error(1)
}

func (m *MockAdminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, name, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// fakeTokens issues "token-<id>" so tests can assert on it.
type fakeTokens struct{}

func (fakeTokens) CreateToken(userID int64, _, _ string) (string, error) {
	return "token-" + strconv.FormatInt(userID, 10), nil
}
