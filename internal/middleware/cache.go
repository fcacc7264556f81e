package middleware

import "github.com/gin-gonic/gin"

// NoStore keeps clinical data out of shared and browser caches.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
