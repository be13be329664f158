// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func authPayload(message string, authResponse *services.AuthResponse) gin.H {
	payload := gin.H{
		"user":          authResponse.User,
		"token":         authResponse.AccessToken,
		"refresh_token": authResponse.RefreshToken,
		"token_type":    authResponse.TokenType,
		"expires_in":    authResponse.ExpiresIn,
	}
	if message != "" {
		payload["message"] = message
	}
	return payload
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
			return
		}
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.CreatedResponse(c, authPayload(i18n.T(lang, i18n.KeyAuthRegisterSuccess), authResponse))
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, authPayload(i18n.T(lang, i18n.KeyAuthLoginSuccess), authResponse))
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	// tokens are stateless; the client drops them
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}

// POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	authResponse, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			return
		}
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, authPayload("", authResponse))
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "user")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":         user,
		"capabilities": user.Role.Capabilities(),
	})
}
