// internal/handlers/common.go
package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/utils"
)

const dateLayout = "2006-01-02"

// bindJSON decodes and validates the request body, writing the error response itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return userID, ok
}

// pathID parses a uuid path parameter; a malformed id is answered as resource not found.
func pathID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := utils.ParseIDParam(c, name)
	if err != nil {
		utils.NotFoundResponse(c, resource)
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(c *gin.Context, name string) *uuid.UUID {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// parseDate reads a YYYY-MM-DD value as a UTC date.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, field+" must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// parseOptionalDate treats an empty value as no date.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
