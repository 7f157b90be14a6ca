package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/rype/internal/domain/errors"
	"github.com/polkiloo/rype/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(middleware.UserIDContextKey)
}

var validationMessages = []struct {
	err     error
	message string
}{
	{domainErrors.ErrEmptyOrder, "Order must contain at least one item"},
	{domainErrors.ErrInvalidTotal, "Invalid order total"},
	{domainErrors.ErrInvalidStatus, "Invalid status"},
	{domainErrors.ErrInvalidTransition, "Status transition not allowed"},
	{domainErrors.ErrInvalidPaymentMethod, "Invalid payment method"},
	{domainErrors.ErrInvalidEmail, "Invalid email format"},
	{domainErrors.ErrMissingFields, "Name, email and password are required"},
	{domainErrors.ErrAlreadyExists, "User already exists"},
}

func respondError(c *gin.Context, err error, notFound string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		for _, v := range validationMessages {
			if errors.Is(err, v.err) {
				fail(c, http.StatusBadRequest, v.message)
				return
			}
		}
		fail(c, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domainErrors.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domainErrors.ErrForbidden):
		fail(c, http.StatusForbidden, "Admin access required")
	case errors.Is(err, domainErrors.ErrNotFound):
		fail(c, http.StatusNotFound, notFound)
	default:
		fail(c, http.StatusInternalServerError, "Internal server error")
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func badJSON(c *gin.Context, err error) {
	_ = c.Error(err)
	fail(c, http.StatusBadRequest, "Invalid request body")
}
