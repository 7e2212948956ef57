package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tamirmana/Shifter/pkg/cache"
)

// CacheInvalidate drops every cached view after a successful write.
// Schedule views aggregate many tables, so fine-grained invalidation is not
// worth tracking at a few seconds of TTL.
func CacheInvalidate(client *cache.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions {
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		client.InvalidateAll(c.Request.Context())
	}
}
