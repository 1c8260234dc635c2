package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/middleware"
	"github.com/tunedeck/backend/internal/services"
	"github.com/tunedeck/backend/pkg/authz"
)

type MusicHandler struct {
	musicService *services.MusicService
}

func NewMusicHandler(musicService *services.MusicService) *MusicHandler {
	return &MusicHandler{musicService: musicService}
}

// Save persists a search result into the caller's catalog
// POST /music
// Body: {"video_id": "...", "title": "...", "channel_title": "...", "thumbnail_url": "...", "source_url": "..."}
func (h *MusicHandler) Save(c *gin.Context) {
	var req struct {
		VideoID      string `json:"video_id" binding:"required"`
		Title        string `json:"title" binding:"required"`
		ChannelTitle string `json:"channel_title"`
		ThumbnailURL string `json:"thumbnail_url"`
		SourceURL    string `json:"source_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_id and title are required"})
		return
	}
	if req.SourceURL == "" {
		req.SourceURL = "https://www.youtube.com/watch?v=" + req.VideoID
	}

	music, err := h.musicService.UpsertForUser(middleware.CallerID(c), services.VideoInput{
		VideoID:      req.VideoID,
		Title:        req.Title,
		ChannelTitle: req.ChannelTitle,
		ThumbnailURL: req.ThumbnailURL,
		SourceURL:    req.SourceURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, music)
}

// History returns the user's most recently saved videos
// GET /music/history/:userId?limit=5
func (h *MusicHandler) History(c *gin.Context) {
	ownerID := c.Param("userId")
	if err := authz.Authorize(middleware.CallerID(c), ownerID); err != nil {
		respondError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	musics, err := h.musicService.ListSearchHistory(ownerID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, musics)
}

// Favorites returns the user's favorited catalog entries
// GET /music/favorites/:userId
func (h *MusicHandler) Favorites(c *gin.Context) {
	ownerID := c.Param("userId")
	if err := authz.Authorize(middleware.CallerID(c), ownerID); err != nil {
		respondError(c, err)
		return
	}

	musics, err := h.musicService.ListFavorites(ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, musics)
}

// ToggleFavorite flips the favorite flag of the caller's catalog entry
// PUT /music/toggle-favorite/:videoId
func (h *MusicHandler) ToggleFavorite(c *gin.Context) {
	music, err := h.musicService.ToggleFavorite(middleware.CallerID(c), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"video_id": music.VideoID, "is_fav": music.IsFav})
}
