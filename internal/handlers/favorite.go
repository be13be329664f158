// internal/handlers/favorite.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// POST /tracks/:id/favorite
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trackID, ok := pathID(c, "id", "track")
	if !ok {
		return
	}

	favorited, err := h.favoriteService.Toggle(c.Request.Context(), userID, trackID)
	if err != nil {
		utils.HandleServiceError(c, err, "track")
		return
	}

	key := i18n.KeyFavoriteRemoved
	if favorited {
		key = i18n.KeyFavoriteAdded
	}
	utils.MessageResponse(c, http.StatusOK, gin.H{"is_favorite": favorited}, key)
}

// GET /favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "track")
		return
	}

	utils.SuccessResponse(c, favorites)
}
