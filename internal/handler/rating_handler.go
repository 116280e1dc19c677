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

type ratingService interface {
	RateableLectures(ctx context.Context, sess models.Session) (*dto.RateableLecturesResponse, error)
	Rate(ctx context.Context, sess models.Session, req dto.RateRequest) (*dto.RateResponse, error)
	SubmitFeedback(ctx context.Context, sess models.Session, req dto.FeedbackRequest) error
}

// RatingHandler serves the student rating surface.
type RatingHandler struct {
	service ratingService
}

// NewRatingHandler constructs the handler.
func NewRatingHandler(service ratingService) *RatingHandler {
	return &RatingHandler{service: service}
}

// Lectures godoc
// @Summary Past lectures available for rating
// @Tags Rating
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /ratings/lectures [get]
func (h *RatingHandler) Lectures(c *gin.Context) {
	resp, err := h.service.RateableLectures(c.Request.Context(), sessionFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Rate godoc
// @Summary Submit a star rating
// @Tags Rating
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /ratings [post]
func (h *RatingHandler) Rate(c *gin.Context) {
	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rating payload"))
		return
	}
	resp, err := h.service.Rate(c.Request.Context(), sessionFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Feedback godoc
// @Summary Submit free-text feedback on a lecture
// @Tags Rating
// @Accept json
// @Success 204
// @Router /ratings/feedback [post]
func (h *RatingHandler) Feedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid feedback payload"))
		return
	}
	if err := h.service.SubmitFeedback(c.Request.Context(), sessionFromContext(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
