package v1

import (
	"net/http"
	"strconv"

	"internport-backend/internal/delivery/http/middleware"
	"internport-backend/internal/delivery/http/response"
	"internport-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

// NewAdminHandler registers admin routes
func NewAdminHandler(api *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users", handler.ListUsers)
		admin.GET("/internships", handler.ListInternships)
		admin.GET("/applications", handler.ListApplications)
		admin.GET("/applications/export", handler.ExportApplications)
		admin.GET("/stats", handler.GetStats)
	}
}

// ListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.AdminUser}
// @Failure      403  {object}  response.Response
// @Router       /api/admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved successfully", users)
}

// ListInternships godoc
// @Summary      List all internships
// @Description  Includes soft-deleted listings and the number of applications
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.AdminInternship}
// @Failure      403  {object}  response.Response
// @Router       /api/admin/internships [get]
// @Security     BearerAuth
func (h *AdminHandler) ListInternships(c *gin.Context) {
	list, err := h.adminUC.ListInternships(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Internships retrieved successfully", list)
}

// ListApplications godoc
// @Summary      List all applications
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.AdminApplication}
// @Failure      403  {object}  response.Response
// @Router       /api/admin/applications [get]
// @Security     BearerAuth
func (h *AdminHandler) ListApplications(c *gin.Context) {
	apps, err := h.adminUC.ListApplications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.AdminStats}
// @Failure      403  {object}  response.Response
// @Router       /api/admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stats retrieved successfully", stats)
}

// ExportApplications godoc
// @Summary      Export all applications
// @Tags         admin
// @Produce      octet-stream
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400  {object}  response.Response
// @Router       /api/admin/applications/export [get]
// @Security     BearerAuth
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	file, err := h.adminUC.ExportApplications(c.Request.Context(), c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
