package server

import (
	"errors"
	"net/http"

	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	customerdomain "github.com/electromax/storefront/internal/customer/domain"
	notificationdomain "github.com/electromax/storefront/internal/notification/domain"
	"github.com/gin-gonic/gin"
)

// APIError is the wire shape for request failures.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Code }

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "malformed request body"}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError maps domain errors onto HTTP responses.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, notificationdomain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidSlug),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, catalogdomain.ErrInvalidCategory),
		errors.Is(err, customerdomain.ErrInvalidUsername),
		errors.Is(err, notificationdomain.ErrInvalidToken),
		errors.Is(err, notificationdomain.ErrInvalidCustomer),
		errors.Is(err, notificationdomain.ErrInvalidPlatform):
		status = http.StatusBadRequest
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":    err.Error(),
		"message": http.StatusText(status),
	}})
}
