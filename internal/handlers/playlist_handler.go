package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/middleware"
	"github.com/tunedeck/backend/internal/services"
	"github.com/tunedeck/backend/pkg/authz"
)

type PlaylistHandler struct {
	playlistService *services.PlaylistService
	shareService    *services.ShareService
}

func NewPlaylistHandler(playlistService *services.PlaylistService, shareService *services.ShareService) *PlaylistHandler {
	return &PlaylistHandler{
		playlistService: playlistService,
		shareService:    shareService,
	}
}

// Create creates an empty playlist
// POST /playlists
// Body: {"user_id": "...", "name": "...", "description": "...", "is_public": false, "is_fav": false}
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req struct {
		UserID      string `json:"user_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		IsPublic    bool   `json:"is_public"`
		IsFav       bool   `json:"is_fav"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and name are required"})
		return
	}

	playlist, err := h.playlistService.Create(req.UserID, req.Name, req.Description, req.IsPublic, req.IsFav)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// ListForUser returns the user's playlists with their tracks
// GET /playlists/user/:userId
func (h *PlaylistHandler) ListForUser(c *gin.Context) {
	ownerID := c.Param("userId")
	if err := authz.Authorize(middleware.CallerID(c), ownerID); err != nil {
		respondError(c, err)
		return
	}

	playlists, err := h.playlistService.ListForUser(ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlists)
}

// ListFavorites returns the user's favorited playlists
// GET /playlists/user/:userId/favorites
func (h *PlaylistHandler) ListFavorites(c *gin.Context) {
	ownerID := c.Param("userId")
	if err := authz.Authorize(middleware.CallerID(c), ownerID); err != nil {
		respondError(c, err)
		return
	}

	playlists, err := h.playlistService.ListFavoritesForUser(ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlists)
}

// Get returns one playlist, readable by its owner or anyone when public
// GET /playlists/:id
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := parseID(c)
	if !ok {
		return
	}

	playlist, err := h.playlistService.GetReadable(playlistID, middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// SharePDF renders a printable share sheet with a QR code
// GET /playlists/:id/share.pdf
func (h *PlaylistHandler) SharePDF(c *gin.Context) {
	playlistID, ok := parseID(c)
	if !ok {
		return
	}

	playlist, err := h.playlistService.GetReadable(playlistID, middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := h.shareService.GeneratePlaylistPDF(playlist)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=playlist-%d.pdf", playlist.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// AddMusic appends a track to the playlist
// PUT /playlists/:id/add-music
// Body: {"videoId": "...", "title": "...", "channelTitle": "...", "thumbnail": "...", "sourceUrl": "..."}
func (h *PlaylistHandler) AddMusic(c *gin.Context) {
	playlistID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		VideoID      string `json:"videoId" binding:"required"`
		Title        string `json:"title" binding:"required"`
		ChannelTitle string `json:"channelTitle"`
		Thumbnail    string `json:"thumbnail"`
		SourceURL    string `json:"sourceUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "videoId and title are required"})
		return
	}
	if req.SourceURL == "" {
		req.SourceURL = "https://www.youtube.com/watch?v=" + req.VideoID
	}

	playlist, err := h.playlistService.AddTrack(playlistID, middleware.CallerID(c), services.VideoInput{
		VideoID:      req.VideoID,
		Title:        req.Title,
		ChannelTitle: req.ChannelTitle,
		ThumbnailURL: req.Thumbnail,
		SourceURL:    req.SourceURL,
	})
	if err != nil {
		// The frontend contract expects a plain 400 for duplicate tracks.
		if errors.Is(err, apperr.ErrConflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": apperr.Message(err)})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// RemoveMusic removes a track from the playlist
// PUT /playlists/:id/remove-music
// Body: {"videoId": "..."}
func (h *PlaylistHandler) RemoveMusic(c *gin.Context) {
	playlistID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		VideoID string `json:"videoId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "videoId is required"})
		return
	}

	playlist, err := h.playlistService.RemoveTrack(playlistID, middleware.CallerID(c), req.VideoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// ToggleFavorite flips the playlist's favorite flag
// PUT /playlists/:id/toggle-favorite
func (h *PlaylistHandler) ToggleFavorite(c *gin.Context) {
	playlistID, ok := parseID(c)
	if !ok {
		return
	}

	playlist, err := h.playlistService.ToggleFavorite(playlistID, middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// Delete removes the playlist
// DELETE /playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.playlistService.Delete(playlistID, middleware.CallerID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
