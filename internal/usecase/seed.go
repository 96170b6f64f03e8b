package usecase

import (
	"context"

	"internport-backend/internal/domain"
	"internport-backend/pkg/logger"
	"internport-backend/pkg/security"
)

type demoAccount struct {
	user     domain.User
	password string
	student  *domain.StudentProfile
	company  *domain.CompanyProfile
}

func demoAccounts() []demoAccount {
	return []demoAccount{
		{
			user:     domain.User{Email: "admin@internport.com", Role: domain.RoleAdmin},
			password: "admin123",
		},
		{
			user:     domain.User{Email: "student@internport.com", Role: domain.RoleStudent},
			password: "student123",
			student: &domain.StudentProfile{
				FullName:    "Demo Student",
				University:  "Demo University",
				Major:       "Computer Science",
				YearOfStudy: "3rd Year",
			},
		},
		{
			user:     domain.User{Email: "company@internport.com", Role: domain.RoleCompany},
			password: "company123",
			company: &domain.CompanyProfile{
				CompanyName: "Demo Corp",
				Description: "A demo company for testing",
				Website:     "https://democorp.com",
				Location:    "Demo City",
			},
		},
	}
}

// SeedDemoData creates the demo accounts that do not exist yet and returns
// how many were created. Running it twice is harmless.
func SeedDemoData(ctx context.Context, users domain.UserRepository) (int, error) {
	created := 0
	for _, acc := range demoAccounts() {
		exists, err := users.EmailExists(ctx, acc.user.Email)
		if err != nil {
			return created, err
		}
		if exists {
			logger.Log.Info("demo account already present", "email", acc.user.Email)
			continue
		}

		hash, err := security.HashPassword(acc.password)
		if err != nil {
			return created, err
		}
		user := acc.user
		user.PasswordHash = hash
		if err := users.CreateWithProfile(ctx, &user, acc.student, acc.company); err != nil {
			return created, err
		}
		created++
		logger.Log.Info("demo account created", "email", user.Email, "role", user.Role)
	}
	return created, nil
}
