// internal/handlers/catalog.go
package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/i18n"
	"github.com/musichub/musichub-backend/internal/services"
	"github.com/musichub/musichub-backend/internal/utils"
)

const minSearchLength = 2

type CatalogHandler struct {
	catalogService  *services.CatalogService
	storageService  *services.StorageService
	favoriteService *services.FavoriteService
	playlistService *services.PlaylistService
}

// AlbumRequest carries the release date as a YYYY-MM-DD string.
type AlbumRequest struct {
	services.AlbumInput
	ReleaseDate string `json:"release_date" validate:"required,datetime=2006-01-02"`
}

func (r *AlbumRequest) toInput() (*services.AlbumInput, error) {
	releaseDate, err := parseDate("release_date", r.ReleaseDate)
	if err != nil {
		return nil, err
	}
	input := r.AlbumInput
	input.ReleaseDate = releaseDate
	return &input, nil
}

func NewCatalogHandler(
	catalogService *services.CatalogService,
	storageService *services.StorageService,
	favoriteService *services.FavoriteService,
	playlistService *services.PlaylistService,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalogService,
		storageService:  storageService,
		favoriteService: favoriteService,
		playlistService: playlistService,
	}
}

// GET /genres
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, err := h.catalogService.ListGenres(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err, "genre")
		return
	}
	utils.SuccessResponse(c, genres)
}

// GET /albums
func (h *CatalogHandler) ListAlbums(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.AlbumFilter{
		ArtistID: queryUUID(c, "artist_id"),
		GenreID:  queryUUID(c, "genre_id"),
		Search:   c.Query("q"),
	}

	albums, total, err := h.catalogService.ListAlbums(c.Request.Context(), filter, params)
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(albums, total, params))
}

// GET /albums/:id
func (h *CatalogHandler) GetAlbum(c *gin.Context) {
	albumID, ok := pathID(c, "id", "album")
	if !ok {
		return
	}

	album, err := h.catalogService.GetAlbum(c.Request.Context(), albumID)
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}
	utils.SuccessResponse(c, album)
}

// POST /albums
func (h *CatalogHandler) CreateAlbum(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AlbumRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	album, err := h.catalogService.CreateAlbum(c.Request.Context(), userID, input)
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	utils.MessageResponse(c, http.StatusCreated, album, i18n.KeyAlbumCreated)
}

// PUT /albums/:id
func (h *CatalogHandler) UpdateAlbum(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	albumID, ok := pathID(c, "id", "album")
	if !ok {
		return
	}

	var req AlbumRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.toInput()
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	album, err := h.catalogService.UpdateAlbum(c.Request.Context(), userID, albumID, input)
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	utils.MessageResponse(c, http.StatusOK, album, i18n.KeyAlbumUpdated)
}

// DELETE /albums/:id
func (h *CatalogHandler) DeleteAlbum(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	albumID, ok := pathID(c, "id", "album")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteAlbum(c.Request.Context(), userID, albumID); err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	utils.MessageResponse(c, http.StatusOK, nil, i18n.KeyAlbumDeleted)
}

// POST /albums/:id/cover
func (h *CatalogHandler) UploadCover(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	albumID, ok := pathID(c, "id", "album")
	if !ok {
		return
	}

	upload, ok := uploadImage(c, h.storageService, services.FolderAlbumCovers, "cover")
	if !ok {
		return
	}

	album, err := h.catalogService.SetAlbumCover(c.Request.Context(), userID, albumID, upload.URL)
	if err != nil {
		h.storageService.Discard(c.Request.Context(), upload)
		utils.HandleServiceError(c, err, "album")
		return
	}

	utils.MessageResponse(c, http.StatusOK, album, i18n.KeyFileUploadSuccess)
}

// GET /albums/:id/tracks/next-number
func (h *CatalogHandler) NextTrackNumber(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	albumID, ok := pathID(c, "id", "album")
	if !ok {
		return
	}

	next, err := h.catalogService.NextTrackNumber(c.Request.Context(), userID, albumID)
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	utils.SuccessResponse(c, gin.H{"track_number": next})
}

// POST /albums/:id/tracks
func (h *CatalogHandler) CreateTrack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	albumID, ok := pathID(c, "id", "album")
	if !ok {
		return
	}

	var req services.TrackInput
	if !bindJSON(c, &req) {
		return
	}

	track, err := h.catalogService.CreateTrack(c.Request.Context(), userID, albumID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "album")
		return
	}

	utils.MessageResponse(c, http.StatusCreated, track, i18n.KeyTrackCreated)
}

// PUT /tracks/:id
func (h *CatalogHandler) UpdateTrack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trackID, ok := pathID(c, "id", "track")
	if !ok {
		return
	}

	var req services.TrackInput
	if !bindJSON(c, &req) {
		return
	}

	track, err := h.catalogService.UpdateTrack(c.Request.Context(), userID, trackID, &req)
	if err != nil {
		utils.HandleServiceError(c, err, "track")
		return
	}

	utils.MessageResponse(c, http.StatusOK, track, i18n.KeyTrackUpdated)
}

// DELETE /tracks/:id
func (h *CatalogHandler) DeleteTrack(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trackID, ok := pathID(c, "id", "track")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteTrack(c.Request.Context(), userID, trackID); err != nil {
		utils.HandleServiceError(c, err, "track")
		return
	}

	utils.MessageResponse(c, http.StatusOK, nil, i18n.KeyTrackDeleted)
}

// GET /search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	q := strings.TrimSpace(c.Query("q"))
	if q != "" && utf8.RuneCountInString(q) < minSearchLength {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySearchQueryTooShort, minSearchLength), nil)
		return
	}

	ctx := c.Request.Context()
	result, err := h.catalogService.Search(ctx, q)
	if err != nil {
		utils.HandleServiceError(c, err, "track")
		return
	}

	payload := gin.H{
		"query":   result.Query,
		"albums":  result.Albums,
		"tracks":  result.Tracks,
		"artists": result.Artists,
	}

	// signed-in listeners also get their favorites and playlists for quick actions
	userID, signedIn := utils.GetUserIDFromContext(c)
	role, _ := utils.GetRoleFromContext(c)
	if signedIn && role.Can(domain.CapManagePlaylists) {
		favorites, err := h.favoriteService.TrackIDs(ctx, userID)
		if err != nil {
			utils.HandleServiceError(c, err, "track")
			return
		}
		ids := make([]uuid.UUID, 0, len(favorites))
		for id := range favorites {
			ids = append(ids, id)
		}

		playlists, err := h.playlistService.List(ctx, userID)
		if err != nil {
			utils.HandleServiceError(c, err, "playlist")
			return
		}
		payload["favorite_track_ids"] = ids
		payload["playlists"] = localizePlaylists(lang, playlists)
	}

	utils.SuccessResponse(c, payload)
}
