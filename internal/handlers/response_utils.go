package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stephanygrace/customer-portal/internal/models"
)

// RespondWithError sends a standardized JSON error response.
func RespondWithError(c *gin.Context, httpStatus int, appErrorCode string, message string, details interface{}) {
	c.JSON(httpStatus, models.APIError{
		Error:   message,
		Code:    appErrorCode,
		Details: details,
	})
}

// RespondWithSuccess sends payload with "success": true merged in. A nil
// payload sends only the status.
func RespondWithSuccess(c *gin.Context, httpStatus int, payload gin.H) {
	if payload == nil {
		c.Status(httpStatus)
		return
	}
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(httpStatus, body)
}

// respondUpstreamError maps an upstream pipeline failure to an HTTP error.
// Upstream bodies and internal messages are logged, never returned.
func respondUpstreamError(c *gin.Context, err error, notFoundCode, notFoundMessage string) {
	log.Printf("[Handlers] %s %s: %v", c.Request.Method, c.FullPath(), err)
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrUpstreamEmpty):
		RespondWithError(c, http.StatusNotFound, notFoundCode, notFoundMessage, nil)
	case errors.Is(err, models.ErrValidation):
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request.", nil)
	case errors.Is(err, models.ErrNormalization):
		RespondWithError(c, http.StatusBadGateway, models.ErrorCodeNormalization, "Upstream returned a job record that could not be read.", nil)
	case errors.Is(err, context.DeadlineExceeded):
		RespondWithError(c, http.StatusGatewayTimeout, models.ErrorCodeRequestTimeout, "Upstream platform did not respond in time.", nil)
	case errors.Is(err, models.ErrUpstreamUnreachable):
		RespondWithError(c, http.StatusBadGateway, models.ErrorCodeUpstreamUnreachable, "Upstream platform is unreachable.", nil)
	default:
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
	}
}
