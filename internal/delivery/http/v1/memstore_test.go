package v1

import (
	"context"
	"sort"
	"sync"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
)

// memDB backs the in-memory repositories used by the router tests.
type memDB struct {
	mu          sync.Mutex
	nextID      int64
	users       map[int64]*domain.User
	students    map[int64]*domain.StudentProfile // by user id
	companies   map[int64]*domain.CompanyProfile // by user id
	internships map[int64]*domain.Internship
	apps        map[int64]*domain.Application
}

func newMemDB() *memDB {
	return &memDB{
		users:       map[int64]*domain.User{},
		students:    map[int64]*domain.StudentProfile{},
		companies:   map[int64]*domain.CompanyProfile{},
		internships: map[int64]*domain.Internship{},
		apps:        map[int64]*domain.Application{},
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

func (db *memDB) studentByID(id int64) *domain.StudentProfile {
	for _, s := range db.students {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (db *memDB) companyByID(id int64) *domain.CompanyProfile {
	for _, c := range db.companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

type memUsers struct{ db *memDB }

func (r memUsers) CreateWithProfile(_ context.Context, user *domain.User, student *domain.StudentProfile, company *domain.CompanyProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return apperror.Conflict("Email already registered")
		}
	}
	user.ID = r.db.id()
	user.IsActive = true
	user.CreatedAt = time.Now()
	u := *user
	r.db.users[user.ID] = &u
	if student != nil {
		student.ID, student.UserID = r.db.id(), user.ID
		s := *student
		r.db.students[user.ID] = &s
	}
	if company != nil {
		company.ID, company.UserID = r.db.id(), user.ID
		c := *company
		r.db.companies[user.ID] = &c
	}
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r memUsers) GetActiveByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email && u.IsActive {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) EmailExists(_ context.Context, email string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memProfiles struct{ db *memDB }

func (r memProfiles) GetStudentByUserID(_ context.Context, userID int64) (*domain.StudentProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.students[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (r memProfiles) GetCompanyByUserID(_ context.Context, userID int64) (*domain.CompanyProfile, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.companies[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r memProfiles) UpdateStudent(_ context.Context, p *domain.StudentProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := *p
	r.db.students[p.UserID] = &out
	return nil
}

func (r memProfiles) UpdateCompany(_ context.Context, p *domain.CompanyProfile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := *p
	r.db.companies[p.UserID] = &out
	return nil
}

func (r memProfiles) SetResumePath(_ context.Context, studentID int64, path string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s := r.db.studentByID(studentID)
	if s == nil {
		return domain.ErrNotFound
	}
	s.ResumePath = &path
	return nil
}

type memInternships struct{ db *memDB }

func (r memInternships) Create(_ context.Context, in *domain.Internship) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	in.ID = r.db.id()
	in.CreatedAt = time.Now()
	in.IsActive = true
	out := *in
	r.db.internships[in.ID] = &out
	return nil
}

func (r memInternships) GetByID(_ context.Context, id int64) (*domain.Internship, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	in, ok := r.db.internships[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *in
	if c := r.db.companyByID(in.CompanyID); c != nil {
		out.CompanyName, out.CompanyDescription = c.CompanyName, c.Description
	}
	return &out, nil
}

func (r memInternships) List(_ context.Context, filter domain.InternshipFilter) ([]domain.Internship, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []domain.Internship{}
	for _, in := range r.db.internships {
		if filter.CompanyID != nil && in.CompanyID != *filter.CompanyID {
			continue
		}
		if !in.IsActive && !filter.IncludeInactive {
			continue
		}
		out = append(out, *in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memInternships) Update(_ context.Context, in *domain.Internship) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.internships[in.ID]; !ok {
		return domain.ErrNotFound
	}
	out := *in
	r.db.internships[in.ID] = &out
	return nil
}

func (r memInternships) Deactivate(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	in, ok := r.db.internships[id]
	if !ok {
		return domain.ErrNotFound
	}
	in.IsActive = false
	return nil
}

type memApps struct{ db *memDB }

func (r memApps) Create(_ context.Context, app *domain.Application) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.InternshipID == app.InternshipID && a.StudentID == app.StudentID {
			return apperror.Conflict("Already applied to this internship")
		}
	}
	app.ID = r.db.id()
	app.AppliedAt = time.Now()
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	out := *app
	r.db.apps[app.ID] = &out
	return nil
}

func (r memApps) Exists(_ context.Context, internshipID, studentID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, a := range r.db.apps {
		if a.InternshipID == internshipID && a.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r memApps) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (r memApps) list(match func(*domain.Application) bool) []domain.Application {
	out := []domain.Application{}
	for _, a := range r.db.apps {
		if !match(a) {
			continue
		}
		row := *a
		if in, ok := r.db.internships[a.InternshipID]; ok {
			row.InternshipTitle = in.Title
			if c := r.db.companyByID(in.CompanyID); c != nil {
				row.CompanyName = c.CompanyName
			}
		}
		if s := r.db.studentByID(a.StudentID); s != nil {
			row.StudentName, row.StudentUniversity, row.StudentMajor = s.FullName, s.University, s.Major
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memApps) ListByStudent(_ context.Context, studentID int64) ([]domain.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.list(func(a *domain.Application) bool { return a.StudentID == studentID }), nil
}

func (r memApps) ListByInternship(_ context.Context, internshipID int64) ([]domain.Application, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.list(func(a *domain.Application) bool { return a.InternshipID == internshipID }), nil
}

func (r memApps) UpdateStatus(_ context.Context, id int64, status string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	return nil
}

type memAdmin struct{ db *memDB }

func (r memAdmin) ListUsers(_ context.Context) ([]domain.AdminUser, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []domain.AdminUser{}
	for _, u := range r.db.users {
		row := domain.AdminUser{ID: u.ID, Email: u.Email, Role: u.Role, IsActive: u.IsActive, CreatedAt: u.CreatedAt}
		if s, ok := r.db.students[u.ID]; ok {
			row.FullName = &s.FullName
		}
		if c, ok := r.db.companies[u.ID]; ok {
			row.CompanyName = &c.CompanyName
		}
		out = append(out, row)
	}
	return out, nil
}

func (r memAdmin) ListInternships(_ context.Context) ([]domain.AdminInternship, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []domain.AdminInternship{}
	for _, in := range r.db.internships {
		row := domain.AdminInternship{
			ID: in.ID, Title: in.Title, Location: in.Location, Stipend: in.Stipend,
			LastDate: in.LastDate, CreatedAt: in.CreatedAt, IsActive: in.IsActive,
		}
		if c := r.db.companyByID(in.CompanyID); c != nil {
			row.CompanyName = c.CompanyName
		}
		for _, a := range r.db.apps {
			if a.InternshipID == in.ID {
				row.ApplicationCount++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r memAdmin) ListApplications(_ context.Context) ([]domain.AdminApplication, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []domain.AdminApplication{}
	for _, a := range (memApps{r.db}).list(func(*domain.Application) bool { return true }) {
		out = append(out, domain.AdminApplication{
			ID: a.ID, InternshipTitle: a.InternshipTitle, CompanyName: a.CompanyName,
			StudentName: a.StudentName, Status: a.Status, AppliedAt: a.AppliedAt,
		})
	}
	return out, nil
}

func (r memAdmin) GetStats(_ context.Context) (*domain.AdminStats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stats := &domain.AdminStats{UsersByRole: map[string]int64{}, ApplicationByStatus: map[string]int64{}}
	for _, u := range r.db.users {
		stats.TotalUsers++
		stats.UsersByRole[u.Role]++
	}
	for _, in := range r.db.internships {
		stats.TotalInternships++
		if in.IsActive {
			stats.ActiveInternships++
		}
	}
	for _, a := range r.db.apps {
		stats.TotalApplications++
		stats.ApplicationByStatus[a.Status]++
	}
	return stats, nil
}
