package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/pkg/logger"
	"go.uber.org/zap"
)

// respondError translates a service error into one JSON error response.
// Unexpected errors are logged with the request id; their details never
// reach the client.
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		requestID, _ := c.Get("requestID")
		id, _ := requestID.(string)
		logger.L().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", id),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
