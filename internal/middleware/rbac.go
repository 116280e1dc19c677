package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

// RequireRoles gates a route to the listed roles. It assumes Session ran
// earlier in the chain.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess.Anonymous() {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if !sess.User.Role.Valid() {
			response.Error(c, appErrors.ErrUnknownRole)
			c.Abort()
			return
		}
		if _, ok := allowed[sess.User.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
