package postgres

import (
	"context"
	"errors"

	"internport-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetStudentByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	query := `
		SELECT id, user_id, full_name, university, major, year_of_study, phone, resume_path
		FROM student_profiles
		WHERE user_id = $1`

	var p domain.StudentProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.University, &p.Major, &p.YearOfStudy, &p.Phone, &p.ResumePath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetCompanyByUserID(ctx context.Context, userID int64) (*domain.CompanyProfile, error) {
	query := `
		SELECT id, user_id, company_name, description, website, location
		FROM company_profiles
		WHERE user_id = $1`

	var p domain.CompanyProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Description, &p.Website, &p.Location,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) UpdateStudent(ctx context.Context, p *domain.StudentProfile) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return execOne(ctx, tx, domain.ErrNotFound, `
			UPDATE student_profiles
			SET full_name = $2, university = $3, major = $4, year_of_study = $5, phone = $6
			WHERE id = $1`,
			p.ID, p.FullName, p.University, p.Major, p.YearOfStudy, p.Phone,
		)
	})
}

func (r *profileRepo) UpdateCompany(ctx context.Context, p *domain.CompanyProfile) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return execOne(ctx, tx, domain.ErrNotFound, `
			UPDATE company_profiles
			SET company_name = $2, description = $3, website = $4, location = $5
			WHERE id = $1`,
			p.ID, p.CompanyName, p.Description, p.Website, p.Location,
		)
	})
}

func (r *profileRepo) SetResumePath(ctx context.Context, studentID int64, path string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return execOne(ctx, tx, domain.ErrNotFound,
			`UPDATE student_profiles SET resume_path = $2 WHERE id = $1`, studentID, path)
	})
}
