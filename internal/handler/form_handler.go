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

type reportFormService interface {
	Start(ctx context.Context, sess models.Session) (*dto.StartFormResponse, error)
	Get(ctx context.Context, sess models.Session, id string) (*dto.FormSession, error)
	Advance(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.FormSession, error)
	Back(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.FormSession, error)
	Submit(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.SubmitFormResponse, error)
}

// FormHandler drives the stepped lecture report wizard over HTTP.
type FormHandler struct {
	service reportFormService
}

// NewFormHandler constructs the handler.
func NewFormHandler(service reportFormService) *FormHandler {
	return &FormHandler{service: service}
}

// Start godoc
// @Summary Open a new report form session
// @Tags ReportForm
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /report-form [post]
func (h *FormHandler) Start(c *gin.Context) {
	resp, err := h.service.Start(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		// Students are sent to the rating surface rather than denied flat.
		if appErrors.FromError(err).Code == appErrors.ErrStudentRatingFlow.Code {
			c.Header("Location", APIPrefix+"/ratings/lectures")
		}
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Get godoc
// @Summary Fetch a form session
// @Tags ReportForm
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /report-form/{id} [get]
func (h *FormHandler) Get(c *gin.Context) {
	session, err := h.service.Get(c.Request.Context(), sessionFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

func bindStep(c *gin.Context) (dto.FormFields, bool) {
	var req dto.FormStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid form payload"))
		return dto.FormFields{}, false
	}
	return req.Fields, true
}

// Advance godoc
// @Summary Merge values and advance one step
// @Tags ReportForm
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /report-form/{id}/next [post]
func (h *FormHandler) Advance(c *gin.Context) {
	fields, ok := bindStep(c)
	if !ok {
		return
	}
	session, err := h.service.Advance(c.Request.Context(), sessionFromContext(c), c.Param("id"), fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Back godoc
// @Summary Merge values and step backwards
// @Tags ReportForm
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /report-form/{id}/back [post]
func (h *FormHandler) Back(c *gin.Context) {
	fields, ok := bindStep(c)
	if !ok {
		return
	}
	session, err := h.service.Back(c.Request.Context(), sessionFromContext(c), c.Param("id"), fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session, nil)
}

// Submit godoc
// @Summary Finalise the form and submit the lecture report
// @Tags ReportForm
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} response.Envelope
// @Router /report-form/{id}/submit [post]
func (h *FormHandler) Submit(c *gin.Context) {
	fields, ok := bindStep(c)
	if !ok {
		return
	}
	resp, err := h.service.Submit(c.Request.Context(), sessionFromContext(c), c.Param("id"), fields)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}
