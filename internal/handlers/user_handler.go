package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/middleware"
	"github.com/tunedeck/backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile returns the caller's mirrored profile
// GET /user
func (h *UserHandler) Profile(c *gin.Context) {
	claims := middleware.Claims(c)

	user, err := h.userService.GetBySubject(middleware.CallerID(c))
	if err != nil {
		// The mirror row may not exist yet if the lazy create failed; the
		// verified claims still identify the caller.
		if errors.Is(err, apperr.ErrNotFound) && claims != nil {
			c.JSON(http.StatusOK, gin.H{"user": claims.PreferredUsername, "email": claims.Email})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Username, "email": user.Email})
}
