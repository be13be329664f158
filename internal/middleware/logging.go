// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/utils"
)

const maxAuditBody = 64 << 10

var redactedKeys = map[string]bool{
	"password":      true,
	"refresh_token": true,
}

// AuditLogMiddleware records every mutating JSON request. The row is written after the handler
// has responded; a failed insert is logged and otherwise ignored.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip logging for reads and health checks
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		// Read request body
		var requestBody []byte
		if c.Request.Body != nil && strings.HasPrefix(c.ContentType(), "application/json") {
			requestBody, _ = io.ReadAll(io.LimitReader(c.Request.Body, maxAuditBody))
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		c.Next()

		auditLog := &models.AuditLog{
			Action:       c.Request.Method + " " + c.FullPath(),
			ResourceType: extractResourceType(c.Request.URL.Path),
			Status:       c.Writer.Status(),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			NewValues:    redact(requestBody),
		}
		if userID, ok := utils.GetUserIDFromContext(c); ok {
			auditLog.UserID = &userID
		}

		// Extract resource ID from URL if present
		if resourceID := extractResourceID(c.Request.URL.Path); resourceID != uuid.Nil {
			auditLog.ResourceID = &resourceID
		}

		if err := db.WithContext(c.Request.Context()).Create(auditLog).Error; err != nil {
			logrus.WithError(err).Error("Failed to create audit log")
		}
	}
}

func redact(body []byte) models.JSONB {
	if len(body) == 0 {
		return nil
	}
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	for key := range data {
		if redactedKeys[key] {
			data[key] = "[redacted]"
		}
	}
	return models.JSONB(data)
}

func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "v1" {
		return parts[1]
	}
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}

func extractResourceID(path string) uuid.UUID {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if id, err := uuid.Parse(part); err == nil {
			return id
		}
	}
	return uuid.Nil
}

// RequestLogger logs one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if userID, ok := utils.GetUserIDFromContext(c); ok {
			fields["user_id"] = userID.String()
		}

		entry := logrus.WithFields(fields)
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request processed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request processed")
		default:
			entry.Info("Request processed")
		}
	}
}
