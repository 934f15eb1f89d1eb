package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/will-terra/teste-time-register/internal/domain"
)

// Err writes the API's error shape.
func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// AbortErr is Err for middleware, stopping the chain.
func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// FromError maps the domain error taxonomy onto HTTP statuses:
// validation and not-ready are unprocessable, unknown references are
// not found, anything else is a 500 with the detail kept server-side.
func FromError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		Err(c, http.StatusUnprocessableEntity, err.Error())
	case domain.IsNotFound(err):
		Err(c, http.StatusNotFound, err.Error())
	case domain.IsNotReady(err):
		Err(c, http.StatusUnprocessableEntity, err.Error())
	default:
		_ = c.Error(err)
		Err(c, http.StatusInternalServerError, "Internal server error")
	}
}
