package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/navigation"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

// NavigationHandler exposes the role policy and the per-user view router.
type NavigationHandler struct {
	registry *navigation.Registry
}

// NewNavigationHandler constructs the handler.
func NewNavigationHandler(registry *navigation.Registry) *NavigationHandler {
	return &NavigationHandler{registry: registry}
}

type navigationState struct {
	Menu        []navigation.MenuItem  `json:"menu"`
	Selected    navigation.View        `json:"selected"`
	Resolved    navigation.View        `json:"resolved"`
	Permissions navigation.Permissions `json:"permissions"`
}

func (h *NavigationHandler) state(c *gin.Context) *navigationState {
	sess := sessionFromContext(c)
	router := h.registry.For(sess.User)
	resolved := router.Resolve()
	return &navigationState{
		Menu:        navigation.MenuFor(sess.User.Role),
		Selected:    router.Current(),
		Resolved:    resolved,
		Permissions: navigation.PermissionsFor(sess.User.Role, resolved),
	}
}

// State godoc
// @Summary Current menu, selection and resolved view
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navigation [get]
func (h *NavigationHandler) State(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess.Anonymous() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, h.state(c), nil)
}

type selectRequest struct {
	View navigation.View `json:"view" binding:"required"`
}

// Select godoc
// @Summary Record a view selection
// @Tags Navigation
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navigation/select [post]
func (h *NavigationHandler) Select(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess.Anonymous() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload"))
		return
	}

	// Selection is recorded as-is; resolution decides what renders.
	h.registry.For(sess.User).Select(req.View)
	response.JSON(c, http.StatusOK, h.state(c), nil)
}

// Logout godoc
// @Summary Drop the caller's navigation state
// @Tags Navigation
// @Success 204
// @Router /navigation [delete]
func (h *NavigationHandler) Logout(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess.Anonymous() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	h.registry.Drop(sess.User.ID)
	response.NoContent(c)
}
