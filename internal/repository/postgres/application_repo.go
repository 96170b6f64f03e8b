package postgres

import (
	"context"
	"errors"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The unique (internship_id, student_id)
// constraint is what finally rejects concurrent duplicates.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO applications (internship_id, student_id, resume_path, cover_letter, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, applied_at`,
			app.InternshipID, app.StudentID, app.ResumePath, app.CoverLetter, app.Status,
		).Scan(&app.ID, &app.AppliedAt)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Already applied to this internship")
		}
		return err
	}
	return nil
}

func (r *applicationRepo) Exists(ctx context.Context, internshipID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM applications WHERE internship_id = $1 AND student_id = $2)`,
		internshipID, studentID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT id, internship_id, student_id, resume_path, cover_letter, status, applied_at
		FROM applications
		WHERE id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.InternshipID, &app.StudentID, &app.ResumePath, &app.CoverLetter, &app.Status, &app.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// ListByStudent returns the student's applications with internship and
// company names, newest first.
func (r *applicationRepo) ListByStudent(ctx context.Context, studentID int64) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.internship_id, a.student_id, a.resume_path, a.cover_letter, a.status, a.applied_at,
		       i.title, c.company_name
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN company_profiles c ON c.id = i.company_id
		WHERE a.student_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.InternshipID, &app.StudentID, &app.ResumePath, &app.CoverLetter, &app.Status, &app.AppliedAt,
			&app.InternshipTitle, &app.CompanyName,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// ListByInternship returns applicants with their student profile details.
func (r *applicationRepo) ListByInternship(ctx context.Context, internshipID int64) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.internship_id, a.student_id, a.resume_path, a.cover_letter, a.status, a.applied_at,
		       s.full_name, s.university, s.major
		FROM applications a
		JOIN student_profiles s ON s.id = a.student_id
		WHERE a.internship_id = $1
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query, internshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.InternshipID, &app.StudentID, &app.ResumePath, &app.CoverLetter, &app.Status, &app.AppliedAt,
			&app.StudentName, &app.StudentUniversity, &app.StudentMajor,
		); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return execOne(ctx, tx, domain.ErrNotFound,
			`UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	})
}
