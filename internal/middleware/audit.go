package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mathcode/tutor-admin-api/internal/credentials"
	"github.com/mathcode/tutor-admin-api/internal/models"
	"github.com/mathcode/tutor-admin-api/internal/repository"
	"github.com/mathcode/tutor-admin-api/pkg/middleware/requestid"
)

// Audit records successful mutating requests. Reads and failed requests
// are not written, keeping the log a trail of effective changes.
func Audit(repo *repository.AuditRepository, creds *credentials.Store, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if repo == nil {
			return
		}
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		entry := models.AuditLog{
			Method:    method,
			Path:      path,
			Status:    c.Writer.Status(),
			RequestID: requestid.Value(c),
			CreatedAt: time.Now().UTC(),
		}
		if creds != nil {
			if admin, err := creds.AdminUser(c.Request.Context()); err == nil {
				entry.AdminEmail = admin.Email
			}
		}

		// Write outside the request context so a client disconnect does
		// not lose the row.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := repo.Record(ctx, entry); err != nil {
				logger.Warn("failed to record audit entry", zap.Error(err))
			}
		}()
	}
}
