package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/middleware"
	"github.com/tunedeck/backend/internal/services"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add bookmarks a video
// POST /favorites
// Body: {"user_id": "...", "title": "...", "channel_title": "...", "thumbnail_url": "...", "video_id": "...", "source_url": "..."}
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req struct {
		UserID       string `json:"user_id" binding:"required"`
		Title        string `json:"title" binding:"required"`
		ChannelTitle string `json:"channel_title"`
		ThumbnailURL string `json:"thumbnail_url"`
		VideoID      string `json:"video_id" binding:"required"`
		SourceURL    string `json:"source_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id, title and video_id are required"})
		return
	}

	favorite, err := h.favoriteService.Add(req.UserID, services.VideoInput{
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

	c.JSON(http.StatusOK, favorite)
}

// ListForUser returns the user's favorites, newest first
// GET /favorites/user/:userId
func (h *FavoriteHandler) ListForUser(c *gin.Context) {
	favorites, err := h.favoriteService.ListForUser(middleware.CallerID(c), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}

// Remove deletes a favorite
// DELETE /favorites/:id
func (h *FavoriteHandler) Remove(c *gin.Context) {
	favoriteID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(favoriteID, middleware.CallerID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "favorite deleted"})
}
