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

type classService interface {
	Load(ctx context.Context, sess models.Session, filter dto.ClassFilter) (*dto.ClassesResponse, error)
}

// ClassHandler serves the classes view.
type ClassHandler struct {
	service classService
}

// NewClassHandler constructs the handler.
func NewClassHandler(service classService) *ClassHandler {
	return &ClassHandler{service: service}
}

// List godoc
// @Summary Classes with derived status, timetable and aggregate stats
// @Tags Classes
// @Produce json
// @Param faculty query string false "Faculty ID or all"
// @Param status query string false "new, popular, small, active or all"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess.Anonymous() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var filter dto.ClassFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}

	resp, err := h.service.Load(c.Request.Context(), sess, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
