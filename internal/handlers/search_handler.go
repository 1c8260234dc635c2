package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/services"
)

type SearchHandler struct {
	videoService *services.VideoService
}

func NewSearchHandler(videoService *services.VideoService) *SearchHandler {
	return &SearchHandler{videoService: videoService}
}

// Search queries the external video-search provider
// GET /search?q=...&maxResults=10
func (h *SearchHandler) Search(c *gin.Context) {
	q := c.Query("q")
	maxResults, _ := strconv.Atoi(c.Query("maxResults"))

	results, err := h.videoService.Search(c.Request.Context(), q, maxResults)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// GetVideo returns the detail record of one video
// GET /videos/:videoId
func (h *SearchHandler) GetVideo(c *gin.Context) {
	video, err := h.videoService.GetVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}
