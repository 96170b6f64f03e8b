package postgres

import (
	"context"

	"internport-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// ListUsers returns every user with the display name of its profile.
func (r *adminRepo) ListUsers(ctx context.Context) ([]domain.AdminUser, error) {
	query := `
		SELECT u.id, u.email, u.role, u.is_active, u.created_at, s.full_name, c.company_name
		FROM users u
		LEFT JOIN student_profiles s ON s.user_id = u.id
		LEFT JOIN company_profiles c ON c.user_id = u.id
		ORDER BY u.created_at DESC, u.id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.AdminUser{}
	for rows.Next() {
		var u domain.AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.FullName, &u.CompanyName); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListInternships includes soft-deleted rows.
func (r *adminRepo) ListInternships(ctx context.Context) ([]domain.AdminInternship, error) {
	query := `
		SELECT i.id, i.title, c.company_name, i.location, i.stipend, i.last_date, i.created_at, i.is_active,
		       (SELECT COUNT(*) FROM applications a WHERE a.internship_id = i.id)
		FROM internships i
		JOIN company_profiles c ON c.id = i.company_id
		ORDER BY i.created_at DESC, i.id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.AdminInternship{}
	for rows.Next() {
		var in domain.AdminInternship
		if err := rows.Scan(
			&in.ID, &in.Title, &in.CompanyName, &in.Location, &in.Stipend, &in.LastDate, &in.CreatedAt, &in.IsActive,
			&in.ApplicationCount,
		); err != nil {
			return nil, err
		}
		items = append(items, in)
	}
	return items, rows.Err()
}

func (r *adminRepo) ListApplications(ctx context.Context) ([]domain.AdminApplication, error) {
	query := `
		SELECT a.id, i.title, c.company_name, s.full_name, a.status, a.applied_at
		FROM applications a
		JOIN internships i ON i.id = a.internship_id
		JOIN company_profiles c ON c.id = i.company_id
		JOIN student_profiles s ON s.id = a.student_id
		ORDER BY a.applied_at DESC, a.id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.AdminApplication{}
	for rows.Next() {
		var a domain.AdminApplication
		if err := rows.Scan(&a.ID, &a.InternshipTitle, &a.CompanyName, &a.StudentName, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// GetStats fetches dashboard statistics
func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{
		UsersByRole:         map[string]int64{domain.RoleStudent: 0, domain.RoleCompany: 0, domain.RoleAdmin: 0},
		ApplicationByStatus: map[string]int64{},
	}
	for _, s := range []string{domain.StatusApplied, domain.StatusShortlisted, domain.StatusRejected, domain.StatusSelected} {
		stats.ApplicationByStatus[s] = 0
	}

	if err := r.countInto(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`, stats.UsersByRole); err != nil {
		return nil, err
	}
	for _, n := range stats.UsersByRole {
		stats.TotalUsers += n
	}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM internships`,
	).Scan(&stats.TotalInternships, &stats.ActiveInternships)
	if err != nil {
		return nil, err
	}

	if err := r.countInto(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`, stats.ApplicationByStatus); err != nil {
		return nil, err
	}
	for _, n := range stats.ApplicationByStatus {
		stats.TotalApplications += n
	}

	return stats, nil
}

func (r *adminRepo) countInto(ctx context.Context, query string, dst map[string]int64) error {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		dst[key] = n
	}
	return rows.Err()
}
