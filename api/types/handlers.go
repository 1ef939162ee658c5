package types

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/reelworks/reel-api/pkg/errors"
)

// Handler utility functions to reduce duplication across handlers

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Code:    string(apperrors.ErrCodeInvalidInput),
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendError maps a service error onto the wire, preserving its structured
// code so clients can reconstruct the typed error
func SendError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.GetHTTPCode(), ErrorResponse{
			Status:  StatusError,
			Message: appErr.Message,
			Code:    string(appErr.Code),
			Details: appErr.Details,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Status:  StatusError,
		Message: err.Error(),
		Code:    string(apperrors.ErrCodeInternal),
	})
}

// SendNotFound sends a 404 with a structured code
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Status:  StatusError,
		Message: message,
		Code:    string(apperrors.ErrCodeNotFound),
	})
}
