package postgres

import (
	"context"
	"errors"
	"fmt"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateWithProfile(ctx context.Context, user *domain.User, student *domain.StudentProfile, company *domain.CompanyProfile) error {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, role)
			VALUES ($1, $2, $3)
			RETURNING id, is_active, created_at`,
			user.Email, user.PasswordHash, user.Role,
		).Scan(&user.ID, &user.IsActive, &user.CreatedAt)
		if err != nil {
			return err
		}

		if student != nil {
			student.UserID = user.ID
			err = tx.QueryRow(ctx, `
				INSERT INTO student_profiles (user_id, full_name, university, major, year_of_study, phone)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`,
				student.UserID, student.FullName, student.University, student.Major, student.YearOfStudy, student.Phone,
			).Scan(&student.ID)
			if err != nil {
				return fmt.Errorf("insert student profile: %w", err)
			}
		}

		if company != nil {
			company.UserID = user.ID
			err = tx.QueryRow(ctx, `
				INSERT INTO company_profiles (user_id, company_name, description, website, location)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				company.UserID, company.CompanyName, company.Description, company.Website, company.Location,
			).Scan(&company.ID)
			if err != nil {
				return fmt.Errorf("insert company profile: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Email already registered")
		}
		return apperror.Internal(err)
	}
	return nil
}

const userColumns = `id, email, password_hash, role, is_active, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepo) GetActiveByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND is_active = TRUE`, email))
}

func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}
