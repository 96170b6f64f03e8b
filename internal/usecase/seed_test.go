package usecase_test

import (
	"context"
	"testing"

	"internport-backend/internal/domain"
	"internport-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoDataSkipsExisting(t *testing.T) {
	users := new(MockUserRepo)
	users.On("EmailExists", mock.Anything, "admin@internport.com").Return(true, nil)
	users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	users.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*domain.User"), mock.Anything, mock.Anything).Return(nil)

	n, err := usecase.SeedDemoData(context.Background(), users)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	users.AssertCalled(t, "CreateWithProfile", mock.Anything,
		mock.MatchedBy(func(u *domain.User) bool { return u.Email == "company@internport.com" }),
		(*domain.StudentProfile)(nil),
		mock.MatchedBy(func(c *domain.CompanyProfile) bool { return c != nil && c.CompanyName == "Demo Corp" }))
}
