package v1

import (
	"net/http"

	"internport-backend/internal/delivery/http/middleware"
	"internport-backend/internal/delivery/http/response"
	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"
	"internport-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(api *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	anyRole := middleware.RequireRole(domain.RoleStudent, domain.RoleCompany, domain.RoleAdmin)
	api.GET("/profile", anyRole, handler.GetProfile)
	api.PUT("/profile", anyRole, handler.UpdateProfile)
}

// UpdateProfileRequest carries the fields to change. Student fields are
// ignored for companies and the other way round.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	University  *string `json:"university"`
	Major       *string `json:"major"`
	YearOfStudy *string `json:"year_of_study"`
	Phone       *string `json:"phone" binding:"omitempty,valid_phone"`

	CompanyName *string `json:"company_name"`
	Description *string `json:"description"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Location    *string `json:"location"`
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.ProfileView}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	view, err := h.profileUC.GetProfile(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved successfully", view)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Description  Partial update; omitted fields keep their value
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /api/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(validation.Message(err)))
		return
	}

	err := h.profileUC.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), domain.ProfileUpdate{
		FullName:    req.FullName,
		University:  req.University,
		Major:       req.Major,
		YearOfStudy: req.YearOfStudy,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", nil)
}
