package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/middleware"
)

// RegisterRoutes wires all API routes onto the router. authMW extracts the
// caller identity for the whole API group; routes that cannot operate
// anonymously add RequireUser on top.
func RegisterRoutes(
	router *gin.Engine,
	authMW gin.HandlerFunc,
	search *SearchHandler,
	music *MusicHandler,
	playlists *PlaylistHandler,
	favorites *FavoriteHandler,
	users *UserHandler,
) {
	// Health check outside API group (no /api/v1 prefix)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api/v1")
	api.Use(authMW)
	{
		// Health check also available under /api/v1/health for compatibility
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})

		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Video search
		api.GET("/search", search.Search)
		api.GET("/videos/:videoId", search.GetVideo)

		// Caller profile
		api.GET("/user", middleware.RequireUser(), users.Profile)

		// Music catalog
		m := api.Group("/music")
		{
			m.POST("", middleware.RequireUser(), music.Save)
			m.GET("/history/:userId", music.History)
			m.GET("/favorites/:userId", music.Favorites)
			m.PUT("/toggle-favorite/:videoId", middleware.RequireUser(), music.ToggleFavorite)
		}

		// Playlists
		pl := api.Group("/playlists")
		{
			pl.POST("", playlists.Create)
			pl.GET("/user/:userId", playlists.ListForUser)
			pl.GET("/user/:userId/favorites", playlists.ListFavorites)
			pl.GET("/:id", playlists.Get)
			pl.GET("/:id/share.pdf", playlists.SharePDF)
			pl.PUT("/:id/add-music", playlists.AddMusic)
			pl.PUT("/:id/remove-music", playlists.RemoveMusic)
			pl.PUT("/:id/toggle-favorite", playlists.ToggleFavorite)
			pl.DELETE("/:id", playlists.Delete)
		}

		// Favorites
		fav := api.Group("/favorites")
		{
			fav.POST("", favorites.Add)
			fav.GET("/user/:userId", favorites.ListForUser)
			fav.DELETE("/:id", favorites.Remove)
		}
	}
}
