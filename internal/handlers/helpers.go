package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "plantonize/internal/errors"
	"plantonize/internal/middleware"
	"plantonize/internal/models"
	"plantonize/internal/pagination"
	"plantonize/internal/services"
	"plantonize/internal/validator"
)

// getRequester extracts the authenticated identity from the Gin context.
// Returns ErrUnauthorized if not present.
func getRequester(c *gin.Context) (services.Requester, error) {
	userID := c.GetString(middleware.UserIDKey)
	role, ok := c.Get(middleware.RoleKey)
	if userID == "" || !ok {
		return services.Requester{}, apperrors.ErrUnauthorized
	}
	r, ok := role.(models.Role)
	if !ok {
		return services.Requester{}, apperrors.ErrUnauthorized
	}
	return services.Requester{
		ID:       userID,
		Username: c.GetString(middleware.UsernameKey),
		Role:     r,
	}, nil
}

// parsePathID reads a UUID path parameter. A malformed id cannot name any
// row, so it is reported with notFound.
func parsePathID(c *gin.Context, param string, notFound *apperrors.AppError) (string, error) {
	id := c.Param(param)
	if !models.IsValidID(id) {
		return "", notFound
	}
	return id, nil
}

// bindError converts a binding failure into an invalid-input error, with
// per-field details when the payload failed validation.
func bindError(err error) error {
	if details, ok := validator.Messages(err); ok {
		return apperrors.WithDetails(apperrors.ErrInvalidInput, details)
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Malformed request")
}

// bindPage reads the optional page and page_size query parameters.
func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, bindError(err)
	}
	return page, nil
}

// respondList converts the items with fn and writes them as a bare array when
// no paging was requested, or as the page envelope otherwise.
func respondList[T, U any](c *gin.Context, req pagination.PageRequest, result *pagination.PageResponse[T], fn func(T) U) {
	page := pagination.Map(*result, fn)
	if req.IsZero() {
		c.JSON(http.StatusOK, page.Data)
		return
	}
	c.JSON(http.StatusOK, page)
}

// respondWithError writes a consistent JSON error response.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
