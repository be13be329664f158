// internal/handlers/playlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

type PlaylistHandler struct {
	playlistService *services.PlaylistService
}

type QuickAddRequest struct {
	PlaylistID string `json:"playlist_id" validate:"required,uuid"`
}

func NewPlaylistHandler(playlistService *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
	}
}

func localizePlaylist(lang string, view *services.PlaylistView) *services.PlaylistView {
	view.DurationDisplay = i18n.T(lang, i18n.KeyPlaylistDuration, view.Hours, view.Minutes)
	return view
}

func localizePlaylists(lang string, views []services.PlaylistView) []services.PlaylistView {
	for i := range views {
		localizePlaylist(lang, &views[i])
	}
	return views
}

// GET /playlists
func (h *PlaylistHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	playlists, err := h.playlistService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err, "playlist")
		return
	}

	utils.SuccessResponse(c, localizePlaylists(utils.GetLangFromContext(c), playlists))
}

// GET /playlists/:id
func (h *PlaylistHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "id", "playlist")
	if !ok {
		return
	}

	playlist, err := h.playlistService.Get(c.Request.Context(), userID, playlistID)
	if err != nil {
		utils.HandleServiceError(c, err, "playlist")
		return
	}

	utils.SuccessResponse(c, localizePlaylist(utils.GetLangFromContext(c), playlist))
}

// POST /playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.PlaylistInput
	if !bindJSON(c, &req) {
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "playlist")
		return
	}

	utils.MessageResponse(c, http.StatusCreated, localizePlaylist(utils.GetLangFromContext(c), playlist), i18n.KeyPlaylistCreated)
}

// PUT /playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "id", "playlist")
	if !ok {
		return
	}

	var req services.PlaylistInput
	if !bindJSON(c, &req) {
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), userID, playlistID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "playlist")
		return
	}

	utils.MessageResponse(c, http.StatusOK, localizePlaylist(utils.GetLangFromContext(c), playlist), i18n.KeyPlaylistUpdated)
}

// DELETE /playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "id", "playlist")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), userID, playlistID); err != nil {
		utils.HandleServiceError(c, err, "playlist")
		return
	}

	utils.MessageResponse(c, http.StatusOK, nil, i18n.KeyPlaylistDeleted)
}

func (h *PlaylistHandler) addTrack(c *gin.Context, userID, playlistID, trackID uuid.UUID) {
	added, playlist, err := h.playlistService.AddTrack(c.Request.Context(), userID, playlistID, trackID)
	if err != nil {
		utils.HandleServiceError(c, err, "playlist")
		return
	}

	data := gin.H{"added": added, "playlist_id": playlist.ID}
	if !added {
		utils.MessageResponse(c, http.StatusOK, data, i18n.KeyPlaylistTrackAlreadyAdded, playlist.Name)
		return
	}
	utils.MessageResponse(c, http.StatusOK, data, i18n.KeyPlaylistTrackAdded, playlist.Name)
}

// POST /playlists/:id/tracks/:track_id
func (h *PlaylistHandler) AddTrack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "id", "playlist")
	if !ok {
		return
	}
	trackID, ok := pathID(c, "track_id", "track")
	if !ok {
		return
	}

	h.addTrack(c, userID, playlistID, trackID)
}

// POST /tracks/:id/quick-add
func (h *PlaylistHandler) QuickAdd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trackID, ok := pathID(c, "id", "track")
	if !ok {
		return
	}

	var req QuickAddRequest
	if !bindJSON(c, &req) {
		return
	}

	h.addTrack(c, userID, uuid.MustParse(req.PlaylistID), trackID)
}

// DELETE /playlists/:id/tracks/:track_id
func (h *PlaylistHandler) RemoveTrack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "id", "playlist")
	if !ok {
		return
	}
	trackID, ok := pathID(c, "track_id", "track")
	if !ok {
		return
	}

	if err := h.playlistService.RemoveTrack(c.Request.Context(), userID, playlistID, trackID); err != nil {
		utils.HandleServiceError(c, err, "playlist")
		return
	}

	utils.MessageResponse(c, http.StatusOK, nil, i18n.KeyPlaylistTrackRemoved)
}
