package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/metanet-market/marketd/internal/domain"
	"github.com/metanet-market/marketd/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeUnavailable      ErrorCode = "listing_unavailable"
	errCodePendingKey       ErrorCode = "pending_key_exchange"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
	errCodeUpstreamError ErrorCode = "upstream_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`

	// Retryable tells the client whether repeating the same call can succeed
	Retryable bool `json:"retryable,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondDomainError maps a typed marketplace error onto an HTTP status.
// Pending key exchanges that carry a receipt are surfaced by the callers as
// 202 before reaching here.
func respondDomainError(c *gin.Context, err error) {
	kind := domain.KindOf(err)

	var (
		status int
		code   ErrorCode
	)
	switch kind {
	case domain.ErrInvalidInput:
		status, code = http.StatusBadRequest, errCodeValidationFailed
	case domain.ErrAlreadyUnavailable, domain.ErrInvalidTransition:
		status, code = http.StatusConflict, errCodeUnavailable
	case domain.ErrPendingKeyExchange:
		// Reached only when there is no receipt to resume with, e.g. a
		// download attempted before the key was released
		status, code = http.StatusConflict, errCodePendingKey
	case domain.ErrMalformedCommitment:
		status, code = http.StatusBadGateway, errCodeUpstreamError
	case domain.ErrIdentityUnavailable, domain.ErrStorageUpload, domain.ErrKeyRegistration,
		domain.ErrBroadcast, domain.ErrPayment, domain.ErrQuery, domain.ErrWithdraw,
		domain.ErrIntegrity:
		status, code = http.StatusBadGateway, errCodeUpstreamError
	default:
		respondInternalError(c, err, "Unexpected error")
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error(err, zap.String("path", c.Request.URL.Path))
	}

	c.JSON(status, errorResponse{
		Error: errorDetail{
			Code:      code,
			Message:   err.Error(),
			Retryable: domain.Retryable(err),
		},
	})
}
