package utils

import (
	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key holding the authenticated user ID
const ContextUserKey = "user_id"

// UserID returns the authenticated user ID stored by the auth middleware
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
