package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse writes the success envelope every handler responds with
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError writes the error envelope, exposing the wrapped error text
// alongside the caller-facing message
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
