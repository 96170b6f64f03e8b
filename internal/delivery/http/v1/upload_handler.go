package v1

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"internport-backend/internal/delivery/http/middleware"
	"internport-backend/internal/delivery/http/response"
	"internport-backend/internal/domain"
	"internport-backend/pkg/apperror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// sniffLen is how much of a stored file is read to detect its type.
const sniffLen = 3072

type UploadHandler struct {
	uploadUC domain.UploadUsecase
	maxSize  int64
}

// NewUploadHandler mounts the upload route on api and the public download
// route on root.
func NewUploadHandler(root gin.IRoutes, api *gin.RouterGroup, uploadUC domain.UploadUsecase, maxSize int64) {
	handler := &UploadHandler{uploadUC: uploadUC, maxSize: maxSize}

	api.POST("/upload-resume", middleware.RequireRole(domain.RoleStudent), handler.UploadResume)
	root.GET("/uploads/:filename", handler.Download)
}

type UploadResponse struct {
	Filename string `json:"filename"`
}

// UploadResume godoc
// @Summary      Upload a resume
// @Description  PDF, DOC or DOCX. The file becomes the student's current resume.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "Resume file"
// @Success      200     {object}  response.Response{data=UploadResponse}
// @Failure      400     {object}  response.Response
// @Failure      413     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /api/upload-resume [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadResume(c *gin.Context) {
	if h.maxSize > 0 {
		// Leave room for the multipart envelope around the file.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+1<<20)
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.Error(apperror.New(apperror.KindValidation, http.StatusRequestEntityTooLarge, "File too large", nil))
			return
		}
		c.Error(apperror.Validation("No file uploaded"))
		return
	}
	if fh.Filename == "" {
		c.Error(apperror.Validation("No file selected"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer f.Close()

	// One byte over the limit is enough for the size check.
	limit := h.maxSize + 1
	if h.maxSize <= 0 {
		limit = fh.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	name, err := h.uploadUC.UploadResume(c.Request.Context(), domain.ResumeUpload{
		UserID:   middleware.CurrentUserID(c),
		Filename: fh.Filename,
		Data:     data,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume uploaded successfully", UploadResponse{Filename: name})
}

// Download godoc
// @Summary      Download an uploaded file
// @Tags         uploads
// @Produce      octet-stream
// @Param        filename  path  string  true  "Stored file name"
// @Success      200
// @Failure      404  {object}  response.Response
// @Router       /uploads/{filename} [get]
func (h *UploadHandler) Download(c *gin.Context) {
	rc, err := h.uploadUC.OpenUpload(c.Request.Context(), c.Param("filename"))
	if err != nil {
		c.Error(err)
		return
	}
	defer rc.Close()

	var head bytes.Buffer
	mt, err := mimetype.DetectReader(io.TeeReader(io.LimitReader(rc, sniffLen), &head))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	c.DataFromReader(http.StatusOK, -1, mt.String(), io.MultiReader(&head, rc), map[string]string{
		"X-Content-Type-Options": "nosniff",
	})
}
