package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "startup-directory.backend/internal/domain/errors"
	"startup-directory.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list with its pagination metadata
func Paginated(c *gin.Context, status int, items interface{}, meta utils.PaginationMeta) {
	c.JSON(status, gin.H{
		"items": items,
		"meta":  meta,
	})
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.AsAppError(err)
	if !ok {
		// Default to Internal Server Error if not an AppError
		appErr = domainerrors.InternalError(err)
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.JSON(appErr.Status, body)
}

// Abort renders err and stops the handler chain
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
