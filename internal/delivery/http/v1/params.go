package v1

import (
	"strconv"

	"internport-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter. On failure the error is
// already pushed to the context.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.Validation("Invalid " + name))
		return 0, false
	}
	return id, true
}
