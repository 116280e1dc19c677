package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/export"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

type monitoringService interface {
	View(ctx context.Context, sess models.Session, q dto.MonitoringQuery) (*dto.MonitoringResponse, error)
	Update(ctx context.Context, sess models.Session, lectureID int, patch models.LecturePatch) error
	Delete(ctx context.Context, sess models.Session, lectureID int) error
	ExportDataset(lectures []models.LectureRecord) export.Dataset
	ExportFilename(role models.Role, now time.Time) string
}

// MonitoringHandler serves the monitoring list, its mutations and its
// exports.
type MonitoringHandler struct {
	service monitoringService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewMonitoringHandler constructs the handler.
func NewMonitoringHandler(service monitoringService) *MonitoringHandler {
	return &MonitoringHandler{
		service: service,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
	}
}

// List godoc
// @Summary Monitoring list with analytics
// @Tags Monitoring
// @Produce json
// @Param search query string false "Free-text search"
// @Param class query string false "Class name filter"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param faculty query string false "Faculty name filter"
// @Param course query string false "Course ID or name filter"
// @Param status query string false "Attendance bucket: high, medium, low or all"
// @Param sort query string false "Sort column"
// @Param dir query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /monitoring [get]
func (h *MonitoringHandler) List(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess.Anonymous() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var q dto.MonitoringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}

	resp, err := h.service.View(c.Request.Context(), sess, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Update godoc
// @Summary Update a lecture record
// @Tags Monitoring
// @Accept json
// @Produce json
// @Param id path int true "Lecture ID"
// @Success 204
// @Router /monitoring/lectures/{id} [put]
func (h *MonitoringHandler) Update(c *gin.Context) {
	sess := sessionFromContext(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lecture id"))
		return
	}

	var patch models.LecturePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lecture payload"))
		return
	}

	if err := h.service.Update(c.Request.Context(), sess, id, patch); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a lecture record
// @Tags Monitoring
// @Param id path int true "Lecture ID"
// @Success 204
// @Router /monitoring/lectures/{id} [delete]
func (h *MonitoringHandler) Delete(c *gin.Context) {
	sess := sessionFromContext(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lecture id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), sess, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export the filtered monitoring list
// @Tags Monitoring
// @Produce text/csv
// @Param format query string false "csv (default) or pdf"
// @Success 200
// @Router /monitoring/export [get]
func (h *MonitoringHandler) Export(c *gin.Context) {
	sess := sessionFromContext(c)
	if sess.Anonymous() {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var q dto.MonitoringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}

	view, err := h.service.View(c.Request.Context(), sess, q)
	if err != nil {
		response.Error(c, err)
		return
	}

	dataset := h.service.ExportDataset(view.Lectures)
	filename := h.service.ExportFilename(sess.User.Role, time.Now())

	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		body, err := h.pdf.Render(dataset, filename)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", filename))
		c.Data(http.StatusOK, "application/pdf", body)
	case "csv":
		body, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv", body)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}
