package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mathcode/tutor-admin-api/internal/credentials"
	appErrors "github.com/mathcode/tutor-admin-api/pkg/errors"
	"github.com/mathcode/tutor-admin-api/pkg/response"
)

// RequireCredentials rejects requests before any platform traffic when no
// operator token is stored.
func RequireCredentials(creds *credentials.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if creds == nil {
			response.Error(c, appErrors.ErrNoAuthToken)
			c.Abort()
			return
		}
		if _, err := creds.Token(c.Request.Context()); err != nil {
			response.Error(c, appErrors.ErrNoAuthToken)
			c.Abort()
			return
		}
		c.Next()
	}
}
