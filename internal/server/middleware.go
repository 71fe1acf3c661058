package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"snapbid/utils"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthMiddleware validates the Bearer token and stores the caller's user
// ID in the gin context. Tokens are HS256 with the subject claim holding
// the user ID.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, jwt.ErrTokenMalformed, "missing bearer token")
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			if err == nil {
				err = jwt.ErrTokenUnverifiable
			}
			utils.JSONError(c, http.StatusUnauthorized, err, "invalid token")
			utils.Warn("AuthMiddleware: rejected token", map[string]any{"error": err.Error()})
			c.Abort()
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			utils.JSONError(c, http.StatusUnauthorized, jwt.ErrTokenInvalidSubject, "invalid token subject")
			c.Abort()
			return
		}

		c.Set(utils.ContextUserKey, subject)
		c.Next()
	}
}
