package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/will-terra/teste-time-register/internal/core/auth"
	"github.com/will-terra/teste-time-register/internal/transport/http/response"
)

func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.AbortErr(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			response.AbortErr(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}
