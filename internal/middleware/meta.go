package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

// WithResponseMeta attaches the response metadata accumulator to the
// request context so the render helpers report processing time and the
// cache-backed services can mark cache hits.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(response.WithMeta(c.Request.Context()))
		c.Next()
	}
}
