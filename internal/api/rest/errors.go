package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-placement-indexer/internal/api/shared/errors"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// statusCodes maps error codes to HTTP status codes
var statusCodes = map[apierrors.ErrorCode]int{
	apierrors.ErrCodeBadRequest:       http.StatusBadRequest,
	apierrors.ErrCodeNotFound:         http.StatusNotFound,
	apierrors.ErrCodeValidationFailed: http.StatusBadRequest,
	apierrors.ErrCodeUnauthorized:     http.StatusUnauthorized,
	apierrors.ErrCodeRateLimited:      http.StatusTooManyRequests,
	apierrors.ErrCodeInternalError:    http.StatusInternalServerError,
	apierrors.ErrCodeDatabaseError:    http.StatusInternalServerError,
	apierrors.ErrCodeServiceError:     http.StatusBadGateway,
}

// respondWithAPIError sends an API error with the status of its code
func respondWithAPIError(c *gin.Context, apiErr *apierrors.APIError) {
	status, ok := statusCodes[apiErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	c.JSON(status, errorResponse{Error: apiErr})
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithAPIError(c, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithAPIError(c, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithAPIError(c, apierrors.NewValidationError(details))
}

// respondError responds with the API error carried by err, or an internal error.
// Server side failures are logged.
func respondError(c *gin.Context, err error, message string) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewInternalError(message)
	}

	if status := statusCodes[apiErr.Code]; status >= http.StatusInternalServerError {
		logger.ErrorCtx(c.Request.Context(), err,
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(apiErr.Code)),
		)
	}

	respondWithAPIError(c, apiErr)
}
