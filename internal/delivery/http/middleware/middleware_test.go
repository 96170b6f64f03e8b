package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type body struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, body) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var b body
	_ = json.Unmarshal(w.Body.Bytes(), &b)
	return w, b
}

func TestRequireTokenAndRole(t *testing.T) {
	tm := auth.NewTokenManager("secret", time.Hour)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/company", RequireToken(tm), RequireRole(domain.RoleCompany), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": CurrentUserID(c), "role": CurrentRole(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/company", nil)
	w, b := serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is missing", b.Error)
	assert.Equal(t, w.Header().Get(RequestIDHeader), b.RequestID)

	req = httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w, b = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", b.Error)

	studentToken, err := tm.CreateToken(7, "s@x.test", domain.RoleStudent)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	w, b = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized access", b.Error)

	companyToken, err := tm.CreateToken(9, "c@x.test", domain.RoleCompany)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/company", nil)
	req.Header.Set("Authorization", "Bearer "+companyToken)
	w, _ = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":9,"role":"company"}`, w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/conflict", func(c *gin.Context) { c.Error(apperror.Conflict("Email already registered")) })
	r.GET("/boom", func(c *gin.Context) { c.Error(errors.New("pq: connection reset")) })
	r.GET("/internal", func(c *gin.Context) { c.Error(apperror.Internal(errors.New("disk full"))) })

	w, b := serve(r, httptest.NewRequest(http.MethodGet, "/conflict", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, b.Success)
	assert.Equal(t, "Email already registered", b.Message)
	assert.Equal(t, b.Message, b.Error)

	for _, path := range []string{"/boom", "/internal"} {
		w, b = serve(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error", b.Error, "details never leak")
	}
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("nil map") })

	w, b := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", b.Error)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://app.internport.com", nil, true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.internport.com")
	w, _ := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.internport.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w, _ = serve(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "dev origins are refused in production")
}

func TestRateLimitLocalFallback(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(DefaultRateLimitConfig(2, time.Minute)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":1234"
		w, _ := serve(r, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	w := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code, "limits are per client")
}

func TestLocalLimiterSweep(t *testing.T) {
	l := newLocalLimiter(RateLimitConfig{Limit: 1, Window: time.Second})
	now := time.Now()

	ok, _ := l.allow("a", now)
	assert.True(t, ok)
	ok, wait := l.allow("a", now)
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	l.sweep(now.Add(time.Hour), time.Minute)
	assert.Empty(t, l.buckets)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/swagger/index.html", func(c *gin.Context) { c.Status(http.StatusOK) })

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))

	w, _ = serve(r, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}
