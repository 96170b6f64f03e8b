package v1

import (
	"net/http"
	"strconv"

	"internport-backend/internal/delivery/http/middleware"
	"internport-backend/internal/delivery/http/response"
	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type InternshipHandler struct {
	internshipUC domain.InternshipUsecase
}

func NewInternshipHandler(api *gin.RouterGroup, internshipUC domain.InternshipUsecase) {
	handler := &InternshipHandler{internshipUC: internshipUC}

	anyRole := middleware.RequireRole(domain.RoleStudent, domain.RoleCompany, domain.RoleAdmin)
	company := middleware.RequireRole(domain.RoleCompany)

	internships := api.Group("/internships")
	{
		internships.POST("", company, handler.Create)
		internships.GET("", anyRole, handler.List)
		internships.GET("/:id", anyRole, handler.Get)
		internships.PUT("/:id", company, handler.Update)
		internships.DELETE("/:id", company, handler.Delete)
	}
}

type CreateInternshipRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Location     string   `json:"location"`
	Stipend      *float64 `json:"stipend" binding:"omitempty,gte=0"`
	LastDate     string   `json:"last_date" binding:"omitempty,iso8601"`
}

type UpdateInternshipRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	Location     *string  `json:"location"`
	Stipend      *float64 `json:"stipend" binding:"omitempty,gte=0"`
	LastDate     *string  `json:"last_date" binding:"omitempty,iso8601"`
}

// CreatedInternship is the short form returned after creation.
type CreatedInternship struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
}

// Create godoc
// @Summary      Post an internship
// @Tags         internships
// @Accept       json
// @Produce      json
// @Param        body  body      CreateInternshipRequest  true  "Internship"
// @Success      201   {object}  response.Response{data=CreatedInternship}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /api/internships [post]
// @Security     BearerAuth
func (h *InternshipHandler) Create(c *gin.Context) {
	var req CreateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Message(err)))
		return
	}

	in, err := h.internshipUC.Create(c.Request.Context(), middleware.CurrentUserID(c), domain.InternshipInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Stipend:      req.Stipend,
		LastDate:     req.LastDate,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Internship created successfully", CreatedInternship{
		ID:          in.ID,
		Title:       in.Title,
		CompanyName: in.CompanyName,
	})
}

// List godoc
// @Summary      List internships
// @Description  Students and admins see active listings. Companies see their own, and can add include_inactive=true.
// @Tags         internships
// @Produce      json
// @Param        include_inactive  query     bool  false  "Company only: include soft-deleted listings"
// @Success      200               {object}  response.Response{data=[]domain.Internship}
// @Router       /api/internships [get]
// @Security     BearerAuth
func (h *InternshipHandler) List(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))

	list, err := h.internshipUC.List(c.Request.Context(), middleware.CurrentUserID(c), middleware.CurrentRole(c), includeInactive)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Internships retrieved successfully", list)
}

// Get godoc
// @Summary      Get an internship
// @Tags         internships
// @Produce      json
// @Param        id   path      int  true  "Internship ID"
// @Success      200  {object}  response.Response{data=domain.Internship}
// @Failure      404  {object}  response.Response
// @Router       /api/internships/{id} [get]
// @Security     BearerAuth
func (h *InternshipHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	in, err := h.internshipUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Internship retrieved successfully", in)
}

// Update godoc
// @Summary      Update an internship
// @Description  Partial update by the owning company
// @Tags         internships
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Internship ID"
// @Param        body  body      UpdateInternshipRequest  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /api/internships/{id} [put]
// @Security     BearerAuth
func (h *InternshipHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Message(err)))
		return
	}

	err := h.internshipUC.Update(c.Request.Context(), middleware.CurrentUserID(c), id, domain.InternshipUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Stipend:      req.Stipend,
		LastDate:     req.LastDate,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Internship updated successfully", nil)
}

// Delete godoc
// @Summary      Delete an internship
// @Description  Soft delete; the listing stays visible to admins
// @Tags         internships
// @Produce      json
// @Param        id   path      int  true  "Internship ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/internships/{id} [delete]
// @Security     BearerAuth
func (h *InternshipHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.internshipUC.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Internship deleted successfully", nil)
}
