package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

type dashboardService interface {
	Load(ctx context.Context, sess models.Session) (*dto.DashboardResponse, error)
}

// DashboardHandler wires the dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Load godoc
// @Summary Role-shaped dashboard payload
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Load(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	sess := sessionFromContext(c)
	if sess.Anonymous() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	resp, err := h.service.Load(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
