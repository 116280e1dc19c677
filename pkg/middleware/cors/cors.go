package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/pkg/config"
)

const (
	allowedHeaders = "Authorization, Content-Type, X-Request-ID"
	allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	// The export endpoints attach downloads via Content-Disposition, so
	// browsers need it exposed to read the suggested filename.
	exposedHeaders = "Content-Disposition"
	maxAgeSeconds  = "600"
)

// New returns a CORS middleware driven by the config allow-list. An empty
// list allows every origin, which is the development default.
func New(cfg config.CORSConfig) gin.HandlerFunc {
	allowed := normalize(cfg.AllowedOrigins)

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Vary", "Origin")

		origin := c.GetHeader("Origin")
		switch {
		case origin != "" && originAllowed(allowed, origin):
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Credentials", "true")
		case origin == "" && len(allowed) == 0:
			header.Set("Access-Control-Allow-Origin", "*")
		}

		header.Set("Access-Control-Allow-Headers", allowedHeaders)
		header.Set("Access-Control-Allow-Methods", allowedMethods)
		header.Set("Access-Control-Expose-Headers", exposedHeaders)
		header.Set("Access-Control-Max-Age", maxAgeSeconds)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// normalize drops blank entries and trailing slashes so a configured
// "https://app.example.com/" still matches the browser's Origin header.
func normalize(origins []string) map[string]struct{} {
	set := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		set[origin] = struct{}{}
	}
	return set
}

func originAllowed(allowed map[string]struct{}, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[strings.TrimRight(origin, "/")]
	return ok
}
