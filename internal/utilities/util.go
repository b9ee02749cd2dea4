// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jobposter-backend/internal/apperror"
	"jobposter-backend/internal/model"
)

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractUser extracts the user model from Gin context.
// It does not abort the request; instead returns an error when missing/invalid.
func ExtractUser(c *gin.Context) (model.User, error) {
	u, _ := c.Get("user")
	if u == nil {
		return model.User{}, apperror.New(apperror.Unauthenticated, "User information not provided", nil)
	}

	user, ok := u.(model.User)
	if !ok {
		return model.User{}, errors.New("Failed to assert type")
	}
	return user, nil
}

// StatusOf map error kind to HTTP status code.
func StatusOf(err error) int {
	switch apperror.KindOf(err) {
	case apperror.InvalidInput:
		return http.StatusBadRequest
	case apperror.Unauthenticated:
		return http.StatusUnauthorized
	case apperror.Forbidden:
		return http.StatusForbidden
	case apperror.JobNotFound, apperror.ApplicationNotFound:
		return http.StatusNotFound
	case apperror.DuplicateEmail, apperror.DuplicateApplication, apperror.InvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError abort request with status and message derived from err.
// Cause of internal error is attached to context for logging but never sent to client.
func RespondError(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := apperror.Message(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "Internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// ParseUUIDParam read path parameter name as uuid.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.New(apperror.InvalidInput, "Invalid "+name, err)
	}
	return id, nil
}
