package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"internport-backend/config"
	"internport-backend/internal/domain"
	"internport-backend/internal/usecase"
	"internport-backend/pkg/auth"
	"internport-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	RequestID string          `json:"request_id"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *memDB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newMemDB()
	users, profiles := memUsers{db}, memProfiles{db}
	internships, apps := memInternships{db}, memApps{db}

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	tokens := auth.NewTokenManager("test-secret", 0)
	cfg := &config.Config{
		GinMode:                  gin.TestMode,
		FrontendURL:              "http://localhost:3000",
		MaxUploadSize:            1 << 20,
		RateLimitWindowSeconds:   60,
		RateLimitLoginThreshold:  1000,
		RateLimitGlobalThreshold: 1000,
	}

	router := NewRouter(RouterDeps{
		AuthUC:        usecase.NewAuthUsecase(users, profiles, tokens),
		ProfileUC:     usecase.NewProfileUsecase(users, profiles),
		InternshipUC:  usecase.NewInternshipUsecase(internships, profiles),
		ApplicationUC: usecase.NewApplicationUsecase(apps, internships, profiles),
		UploadUC:      usecase.NewUploadUsecase(store, profiles, nil, nil, nil, cfg.MaxUploadSize),
		AdminUC:       usecase.NewAdminUsecase(memAdmin{db}),
		Tokens:        tokens,
		Config:        cfg,
	})
	return &testServer{t: t, router: router, db: db}
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (s *testServer) register(body map[string]any) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/register", "", body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var res domain.AuthResult
	require.NoError(s.t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(s.t, res.Token)
	return res.Token
}

func (s *testServer) createInternship(token string, lastDate time.Time) int64 {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/internships", token, map[string]any{
		"title":       "Backend Intern",
		"description": "Work on the API",
		"location":    "Remote",
		"stipend":     1200,
		"last_date":   lastDate.Format(time.RFC3339),
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(s.t, "Internship created successfully", env.Message)

	var created CreatedInternship
	require.NoError(s.t, json.Unmarshal(env.Data, &created))
	return created.ID
}

func decodeList[T any](t *testing.T, env envelope) []T {
	t.Helper()
	var out []T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestEndToEndApplicationFlow(t *testing.T) {
	s := newTestServer(t)

	company := s.register(map[string]any{
		"email": "hr@acme.test", "password": "secret", "role": "company", "company_name": "Acme",
	})
	internshipID := s.createInternship(company, time.Now().Add(72*time.Hour))

	student := s.register(map[string]any{
		"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana Diaz",
	})

	applyPath := fmt.Sprintf("/api/apply/%d", internshipID)
	w, env := s.do(http.MethodPost, applyPath, student, map[string]any{"cover_letter": "Hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Application submitted successfully", env.Message)

	var applied ApplyResponse
	require.NoError(t, json.Unmarshal(env.Data, &applied))
	require.NotZero(t, applied.ApplicationID)

	// Second attempt is rejected and leaves one row.
	w, env = s.do(http.MethodPost, applyPath, student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already applied to this internship", env.Error)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/applications/%d", internshipID), company, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeList[domain.Application](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusApplied, list[0].Status)
	assert.Equal(t, "Ana Diaz", list[0].StudentName)

	w, env = s.do(http.MethodPut, fmt.Sprintf("/api/application/%d/status", applied.ApplicationID), company,
		map[string]any{"status": domain.StatusSelected})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Application status updated successfully", env.Message)

	w, env = s.do(http.MethodGet, "/api/my-applications", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decodeList[domain.Application](t, env)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.StatusSelected, mine[0].Status)
	assert.Equal(t, "Backend Intern", mine[0].InternshipTitle)
	assert.Equal(t, "Acme", mine[0].CompanyName)
}

func TestLoginReturnsDisplayName(t *testing.T) {
	s := newTestServer(t)
	s.register(map[string]any{
		"email": "hr@acme.test", "password": "secret", "role": "company", "company_name": "Acme",
	})

	w, env := s.do(http.MethodPost, "/login", "", map[string]any{"email": "hr@acme.test", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)

	var res domain.AuthResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotNil(t, res.User.CompanyName)
	assert.Equal(t, "Acme", *res.User.CompanyName)

	w, env = s.do(http.MethodPost, "/login", "", map[string]any{"email": "hr@acme.test", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", env.Error)
	assert.Equal(t, env.Message, env.Error)
}

func TestDuplicateRegistrationIsRejected(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana"}
	s.register(body)

	w, env := s.do(http.MethodPost, "/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", env.Error)
	assert.Len(t, s.db.users, 1)
}

func TestTokenAndRoleChecks(t *testing.T) {
	s := newTestServer(t)
	student := s.register(map[string]any{
		"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana",
	})

	w, env := s.do(http.MethodGet, "/api/internships", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is missing", env.Error)

	w, env = s.do(http.MethodGet, "/api/internships", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", env.Error)

	w, env = s.do(http.MethodPost, "/api/internships", student, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized access", env.Error)

	w, _ = s.do(http.MethodGet, "/api/admin/users", student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNonOwnerCompanyIsForbidden(t *testing.T) {
	s := newTestServer(t)
	owner := s.register(map[string]any{
		"email": "hr@acme.test", "password": "secret", "role": "company", "company_name": "Acme",
	})
	other := s.register(map[string]any{
		"email": "hr@globex.test", "password": "secret", "role": "company", "company_name": "Globex",
	})
	student := s.register(map[string]any{
		"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana",
	})

	id := s.createInternship(owner, time.Now().Add(48*time.Hour))
	_, env := s.do(http.MethodPost, fmt.Sprintf("/api/apply/%d", id), student, nil)
	var applied ApplyResponse
	require.NoError(t, json.Unmarshal(env.Data, &applied))

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, fmt.Sprintf("/api/internships/%d", id), map[string]any{"title": "Hijacked"}},
		{http.MethodDelete, fmt.Sprintf("/api/internships/%d", id), nil},
		{http.MethodGet, fmt.Sprintf("/api/applications/%d", id), nil},
		{http.MethodPut, fmt.Sprintf("/api/application/%d/status", applied.ApplicationID), map[string]any{"status": "REJECTED"}},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w, env := s.do(tc.method, tc.path, other, tc.body)
			assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
			assert.Equal(t, "Not authorized", env.Error)
		})
	}

	assert.Equal(t, "Backend Intern", s.db.internships[id].Title)
	assert.True(t, s.db.internships[id].IsActive)
}

func TestSoftDeletedInternshipVisibility(t *testing.T) {
	s := newTestServer(t)
	company := s.register(map[string]any{
		"email": "hr@acme.test", "password": "secret", "role": "company", "company_name": "Acme",
	})
	student := s.register(map[string]any{
		"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana",
	})
	admin := s.register(map[string]any{"email": "root@internport.test", "password": "secret", "role": "admin"})

	id := s.createInternship(company, time.Now().Add(48*time.Hour))

	w, env := s.do(http.MethodDelete, fmt.Sprintf("/api/internships/%d", id), company, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Internship deleted successfully", env.Message)

	_, env = s.do(http.MethodGet, "/api/internships", student, nil)
	assert.Empty(t, decodeList[domain.Internship](t, env))

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/internships/%d", id), student, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = s.do(http.MethodGet, "/api/internships", company, nil)
	assert.Empty(t, decodeList[domain.Internship](t, env))
	_, env = s.do(http.MethodGet, "/api/internships?include_inactive=true", company, nil)
	assert.Len(t, decodeList[domain.Internship](t, env), 1)

	w, env = s.do(http.MethodGet, "/api/admin/internships", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decodeList[domain.AdminInternship](t, env)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsActive)
	assert.Equal(t, "Acme", rows[0].CompanyName)
}

func TestApplyAfterDeadline(t *testing.T) {
	s := newTestServer(t)
	company := s.register(map[string]any{
		"email": "hr@acme.test", "password": "secret", "role": "company", "company_name": "Acme",
	})
	student := s.register(map[string]any{
		"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana",
	})
	id := s.createInternship(company, time.Now().Add(-time.Hour))

	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/apply/%d", id), student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Application deadline has passed", env.Error)
}

func TestResumeUploadAndDownload(t *testing.T) {
	s := newTestServer(t)
	student := s.register(map[string]any{
		"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana",
	})

	upload := func(field, filename string, data []byte) (*httptest.ResponseRecorder, envelope) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, _ = part.Write(data)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload-resume", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+student)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		var env envelope
		_ = json.Unmarshal(w.Body.Bytes(), &env)
		return w, env
	}

	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

	w, env := upload("other", "cv.pdf", pdf)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", env.Error)

	w, _ = upload("resume", "cv.exe", pdf)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = upload("resume", "cv.pdf", pdf)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Resume uploaded successfully", env.Message)

	var res UploadResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Regexp(t, `^resume_\d+_[0-9a-f]{32}_cv\.pdf$`, res.Filename)

	w, env = s.do(http.MethodGet, "/api/profile", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view domain.ProfileView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.NotNil(t, view.ResumePath)
	assert.Equal(t, res.Filename, *view.ResumePath)

	w, _ = s.do(http.MethodGet, "/uploads/"+res.Filename, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, pdf, w.Body.Bytes())

	for _, name := range []string{"missing.pdf", "..secret"} {
		w, env = s.do(http.MethodGet, "/uploads/"+name, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code, name)
		assert.Equal(t, "File not found", env.Error)
	}

	for _, filename := range []string{"cv..v2.pdf", "J. Doe..final.pdf"} {
		w, env = upload("resume", filename, pdf)
		require.Equal(t, http.StatusOK, w.Code, filename+": "+w.Body.String())
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.NotContains(t, res.Filename, "..")

		w, _ = s.do(http.MethodGet, "/uploads/"+res.Filename, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, filename)
	}
}

func TestRequestValidationTags(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodPost, "/register", "", map[string]any{
		"email": "x@uni.test", "password": "secret", "role": "guest",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role", env.Error)

	company := s.register(map[string]any{
		"email": "hr@acme.test", "password": "secret", "role": "company", "company_name": "Acme",
	})
	student := s.register(map[string]any{
		"email": "ana@uni.test", "password": "secret", "role": "student", "full_name": "Ana",
	})

	w, env = s.do(http.MethodPost, "/api/internships", company, map[string]any{
		"title": "Intern", "description": "d", "last_date": "next friday",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date format", env.Error)

	id := s.createInternship(company, time.Now().Add(24*time.Hour))
	w, env = s.do(http.MethodPut, fmt.Sprintf("/api/internships/%d", id), company, map[string]any{"last_date": "01/02/2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid date format", env.Error)

	w, env = s.do(http.MethodPut, fmt.Sprintf("/api/internships/%d", id), company, map[string]any{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Title cannot be empty", env.Error)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/apply/%d", id), student, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var applied ApplyResponse
	require.NoError(t, json.Unmarshal(env.Data, &applied))

	w, env = s.do(http.MethodPut, fmt.Sprintf("/api/application/%d/status", applied.ApplicationID), company,
		map[string]any{"status": "HIRED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid status", env.Error)

	w, env = s.do(http.MethodPut, "/api/profile", student, map[string]any{"full_name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Full name cannot be empty", env.Error)
}

func TestAdminExport(t *testing.T) {
	s := newTestServer(t)
	admin := s.register(map[string]any{"email": "root@internport.test", "password": "secret", "role": "admin"})

	w, _ := s.do(http.MethodGet, "/api/admin/applications/export?format=csv", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	w, _ = s.do(http.MethodGet, "/api/admin/applications/export?format=pdf", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorEnvelopeCarriesRequestID(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), env.RequestID)
}
