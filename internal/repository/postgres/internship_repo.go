package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"internport-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type internshipRepo struct {
	db *pgxpool.Pool
}

func NewInternshipRepository(db *pgxpool.Pool) domain.InternshipRepository {
	return &internshipRepo{db: db}
}

func (r *internshipRepo) Create(ctx context.Context, in *domain.Internship) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO internships (company_id, title, description, requirements, location, stipend, last_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, is_active`,
			in.CompanyID, in.Title, in.Description, in.Requirements, in.Location, in.Stipend, in.LastDate,
		).Scan(&in.ID, &in.CreatedAt, &in.IsActive)
	})
}

const internshipSelect = `
	SELECT i.id, i.company_id, i.title, i.description, i.requirements, i.location,
	       i.stipend, i.last_date, i.created_at, i.is_active,
	       c.company_name, c.description
	FROM internships i
	JOIN company_profiles c ON c.id = i.company_id`

func scanInternship(row pgx.Row) (domain.Internship, error) {
	var in domain.Internship
	err := row.Scan(
		&in.ID, &in.CompanyID, &in.Title, &in.Description, &in.Requirements, &in.Location,
		&in.Stipend, &in.LastDate, &in.CreatedAt, &in.IsActive,
		&in.CompanyName, &in.CompanyDescription,
	)
	return in, err
}

func (r *internshipRepo) GetByID(ctx context.Context, id int64) (*domain.Internship, error) {
	in, err := scanInternship(r.db.QueryRow(ctx, internshipSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &in, nil
}

func (r *internshipRepo) List(ctx context.Context, filter domain.InternshipFilter) ([]domain.Internship, error) {
	var (
		where []string
		args  []any
	)
	if !filter.IncludeInactive {
		where = append(where, "i.is_active = TRUE")
	}
	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		where = append(where, fmt.Sprintf("i.company_id = $%d", len(args)))
	}

	query := internshipSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY i.created_at DESC, i.id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Internship{}
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		// The description column is only part of single-item reads.
		in.CompanyDescription = ""
		items = append(items, in)
	}
	return items, rows.Err()
}

func (r *internshipRepo) Update(ctx context.Context, in *domain.Internship) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return execOne(ctx, tx, domain.ErrNotFound, `
			UPDATE internships
			SET title = $2, description = $3, requirements = $4, location = $5, stipend = $6, last_date = $7
			WHERE id = $1`,
			in.ID, in.Title, in.Description, in.Requirements, in.Location, in.Stipend, in.LastDate,
		)
	})
}

func (r *internshipRepo) Deactivate(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		return execOne(ctx, tx, domain.ErrNotFound,
			`UPDATE internships SET is_active = FALSE WHERE id = $1`, id)
	})
}
