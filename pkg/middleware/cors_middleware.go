package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets browser clients on other origins call the JSON API
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, Idempotent-Replayed")
		c.Header("Access-Control-Max-Age", "3600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
