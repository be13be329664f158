// internal/handlers/user.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GET /users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateUserProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserProfileUpdated),
		"user":    user,
	})
}

// DELETE /users/account
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.DeleteAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.DeleteAccount(c.Request.Context(), userID, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		return
	case errors.Is(err, domain.ErrConflict):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyUserHasDependents))
		return
	default:
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserAccountDeleted),
	})
}

// GET /users/:id/public
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	profile, err := h.userService.GetPublicProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, profile)
}

// GET /artists
func (h *UserHandler) ListArtists(c *gin.Context) {
	artists, err := h.userService.ListArtists(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, artists)
}
