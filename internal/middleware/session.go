// Package middleware holds the gin middleware chain: session decoding,
// role gating, metrics capture and response metadata.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/gateway"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	"github.com/Zulu-012/luct-reporting-system/internal/service"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

// ContextSessionKey is the gin context key storing the decoded session.
const ContextSessionKey = "currentSession"

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// attach decodes the token, builds the immutable session for this request
// and forwards the raw token so gateway calls act as the caller.
func attach(c *gin.Context, authService *service.AuthService, token string) error {
	claims, err := authService.ValidateToken(token)
	if err != nil {
		return err
	}
	c.Set(ContextSessionKey, models.Session{User: claims.User()})
	c.Request = c.Request.WithContext(gateway.WithToken(c.Request.Context(), token))
	return nil
}

// Session protects routes by requiring a valid access token.
func Session(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or malformed authorization header"))
			c.Abort()
			return
		}
		if err := attach(c, authService, token); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFrom returns the request's session, anonymous when absent.
func SessionFrom(c *gin.Context) models.Session {
	if v, exists := c.Get(ContextSessionKey); exists {
		if sess, ok := v.(models.Session); ok {
			return sess
		}
	}
	return models.Session{}
}
