package v1

import (
	"context"
	"net/http"

	"internport-backend/internal/delivery/http/response"
	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/metrics"
	"internport-backend/pkg/security"
	"internport-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// LoginGuard tracks failed logins per email and IP.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, email, ip string) error
}

type AuthHandler struct {
	authUC domain.AuthUsecase
	guard  LoginGuard
	audit  *security.SecurityLogger
}

func NewAuthHandler(public gin.IRoutes, authUC domain.AuthUsecase, guard LoginGuard, audit *security.SecurityLogger) {
	if audit == nil {
		audit = security.DefaultLogger()
	}
	handler := &AuthHandler{authUC: authUC, guard: guard, audit: audit}

	public.POST("/register", handler.Register)
	public.POST("/login", handler.Login)
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role" binding:"omitempty,user_role"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary      Register
// @Description  Create a student, company or admin account together with its profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration details"
// @Success      201       {object}  response.Response{data=domain.AuthResult}
// @Failure      400       {object}  response.Response
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Message(err)))
		return
	}

	res, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		FullName:    req.FullName,
		CompanyName: req.CompanyName,
		Description: req.Description,
	})
	if err != nil {
		metrics.AuthEvents.WithLabelValues("register", "error").Inc()
		c.Error(err)
		return
	}

	metrics.AuthEvents.WithLabelValues("register", "success").Inc()
	response.Success(c, http.StatusCreated, "Registration successful", res)
}

// Login godoc
// @Summary      Login
// @Description  Exchange email and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.AuthResult}
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()
	requestID := c.GetString(string(domain.KeyRequestID))

	if h.guard != nil && req.Email != "" {
		blocked, err := h.guard.IsBlocked(ctx, req.Email, ip)
		if err == nil && blocked {
			metrics.AuthEvents.WithLabelValues("login", "blocked").Inc()
			h.audit.LogLoginBlocked(ctx, req.Email, ip, c.Request.UserAgent(), requestID)
			c.Error(apperror.New(apperror.KindDomain, http.StatusTooManyRequests,
				"Too many failed login attempts. Please try again later.", nil))
			return
		}
	}

	res, err := h.authUC.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.AuthEvents.WithLabelValues("login", "error").Inc()
		if apperror.Is(err, apperror.KindUnauthorized) {
			h.audit.LogLoginFailed(ctx, req.Email, ip, c.Request.UserAgent(), requestID, "invalid_credentials")
			if h.guard != nil {
				_, _, _ = h.guard.RecordFailedAttempt(ctx, req.Email, ip, c.Request.UserAgent(), requestID)
			}
		}
		c.Error(err)
		return
	}

	if h.guard != nil {
		_ = h.guard.ClearAttempts(ctx, req.Email, ip)
	}
	h.audit.LogLoginSuccess(ctx, res.User.ID, ip, requestID)
	metrics.AuthEvents.WithLabelValues("login", "success").Inc()
	response.Success(c, http.StatusOK, "Login successful", res)
}
