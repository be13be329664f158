// internal/handlers/beat.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type BeatHandler struct {
	beatService    *services.BeatService
	storageService *services.StorageService
}

func NewBeatHandler(beatService *services.BeatService, storageService *services.StorageService) *BeatHandler {
	return &BeatHandler{
		beatService:    beatService,
		storageService: storageService,
	}
}

// GET /beats?producer_id=&genre_id=&tag=&mine=true
func (h *BeatHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.BeatFilter{
		ProducerID:    queryUUID(c, "producer_id"),
		GenreID:       queryUUID(c, "genre_id"),
		Tag:           c.Query("tag"),
		OnlyAvailable: true,
	}

	// producers see their whole catalogue, including withdrawn beats
	if c.Query("mine") == "true" {
		userID, signedIn := utils.GetUserIDFromContext(c)
		role, _ := utils.GetRoleFromContext(c)
		if !signedIn || !role.Can(domain.CapManageBeats) {
			utils.ForbiddenResponse(c, "")
			return
		}
		filter.ProducerID = &userID
		filter.OnlyAvailable = false
	}

	beats, total, err := h.beatService.List(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleServiceError(c, err, "beat")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(beats, total, params))
}

// GET /beats/:id
func (h *BeatHandler) Get(c *gin.Context) {
	beatID, ok := pathID(c, "id", "beat")
	if !ok {
		return
	}

	beat, err := h.beatService.Get(c.Request.Context(), beatID)
	if err != nil {
		utils.HandleServiceError(c, err, "beat")
		return
	}

	utils.SuccessResponse(c, beat)
}

// POST /beats
func (h *BeatHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.BeatInput
	if !bindJSON(c, &req) {
		return
	}

	beat, err := h.beatService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "beat")
		return
	}

	utils.MessageResponse(c, http.StatusCreated, beat, i18n.KeyBeatCreated)
}

// PUT /beats/:id
func (h *BeatHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	beatID, ok := pathID(c, "id", "beat")
	if !ok {
		return
	}

	var req services.BeatInput
	if !bindJSON(c, &req) {
		return
	}

	beat, err := h.beatService.Update(c.Request.Context(), userID, beatID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "beat")
		return
	}

	utils.MessageResponse(c, http.StatusOK, beat, i18n.KeyBeatUpdated)
}

// DELETE /beats/:id
func (h *BeatHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	beatID, ok := pathID(c, "id", "beat")
	if !ok {
		return
	}

	if err := h.beatService.Delete(c.Request.Context(), userID, beatID); err != nil {
		utils.HandleServiceError(c, err, "beat")
		return
	}

	utils.MessageResponse(c, http.StatusOK, nil, i18n.KeyBeatDeleted)
}

// POST /beats/:id/artwork
func (h *BeatHandler) UploadArtwork(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	beatID, ok := pathID(c, "id", "beat")
	if !ok {
		return
	}

	upload, ok := uploadImage(c, h.storageService, services.FolderBeatArtwork, "artwork")
	if !ok {
		return
	}

	beat, err := h.beatService.SetArtwork(c.Request.Context(), userID, beatID, upload.URL)
	if err != nil {
		h.storageService.Discard(c.Request.Context(), upload)
		utils.HandleServiceError(c, err, "beat")
		return
	}

	utils.MessageResponse(c, http.StatusOK, beat, i18n.KeyFileUploadSuccess)
}
