package gateway

import (
	"context"
	"errors"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

// CurrentUser returns the session's authenticated user, or nil when the
// gateway does not recognise the token. Absence degrades to an anonymous
// session, never an error the caller must treat as fatal.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && (appErr.Code == appErrors.ErrUnauthorized.Code || appErr.Code == appErrors.ErrNotFound.Code) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
