package handler

import (
	"github.com/gin-gonic/gin"

	"studymate/internal/transport/http/middleware"
)

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func getUsernameFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(middleware.ContextUsernameKey)
	if !exists {
		return "", false
	}
	username, ok := value.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
