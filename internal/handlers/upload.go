// internal/handlers/upload.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

// uploadImage stores the multipart file under field and writes the error response on failure.
func uploadImage(c *gin.Context, storage *services.StorageService, folder, field string) (*services.UploadResult, bool) {
	lang := utils.GetLangFromContext(c)

	fileHeader, err := c.FormFile(field)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, field), nil)
		return nil, false
	}
	if fileHeader.Size > storage.MaxUploadBytes() {
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", i18n.T(lang, i18n.KeyFileTooLarge, storage.MaxUploadBytes()>>20), nil)
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), nil)
		return nil, false
	}
	defer file.Close()

	result, err := storage.UploadImage(c.Request.Context(), folder, file)
	switch {
	case err == nil:
		return result, true
	case errors.Is(err, services.ErrFileTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", i18n.T(lang, i18n.KeyFileTooLarge, storage.MaxUploadBytes()>>20), nil)
	case errors.Is(err, services.ErrUnsupportedFileType):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileInvalidType), nil)
	default:
		utils.HandleServiceError(c, err, "file")
	}
	return nil, false
}
