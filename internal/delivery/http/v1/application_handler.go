package v1

import (
	"errors"
	"io"
	"net/http"

	"internport-backend/internal/delivery/http/middleware"
	"internport-backend/internal/delivery/http/response"
	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(api *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	student := middleware.RequireRole(domain.RoleStudent)
	company := middleware.RequireRole(domain.RoleCompany)

	// Student routes
	api.POST("/apply/:internship_id", student, handler.Apply)
	api.GET("/my-applications", student, handler.MyApplications)

	// Company routes
	api.GET("/applications/:internship_id", company, handler.ListForInternship)
	api.PUT("/application/:id/status", company, handler.UpdateStatus)
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type ApplyResponse struct {
	ApplicationID int64 `json:"application_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"omitempty,application_status"`
}

// Apply godoc
// @Summary      Apply to an internship
// @Description  The student's current resume is attached to the application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        internship_id  path      int           true   "Internship ID"
// @Param        body           body      ApplyRequest  false  "Cover letter"
// @Success      201            {object}  response.Response{data=ApplyResponse}
// @Failure      400            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /api/apply/{internship_id} [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	internshipID, ok := pathID(c, "internship_id")
	if !ok {
		return
	}

	// The body is optional.
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.Validation(validation.Message(err)))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), middleware.CurrentUserID(c), internshipID, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", ApplyResponse{ApplicationID: app.ID})
}

// MyApplications godoc
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /api/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	apps, err := h.applicationUC.MyApplications(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// ListForInternship godoc
// @Summary      List applications for an internship
// @Description  Owning company only
// @Tags         applications
// @Produce      json
// @Param        internship_id  path      int  true  "Internship ID"
// @Success      200            {object}  response.Response{data=[]domain.Application}
// @Failure      403            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /api/applications/{internship_id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForInternship(c *gin.Context) {
	internshipID, ok := pathID(c, "internship_id")
	if !ok {
		return
	}

	apps, err := h.applicationUC.ListForInternship(c.Request.Context(), middleware.CurrentUserID(c), internshipID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", apps)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  APPLIED, SHORTLISTED, REJECTED or SELECTED
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /api/application/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.Validation(validation.Message(err)))
		return
	}

	if err := h.applicationUC.UpdateStatus(c.Request.Context(), middleware.CurrentUserID(c), id, req.Status); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated successfully", nil)
}
