package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
	"github.com/Zulu-012/luct-reporting-system/pkg/response"
)

type principalReportGateway interface {
	PrincipalReports(ctx context.Context) (*models.PrincipalReport, error)
}

type systemMetricsSource interface {
	Snapshot() models.SystemMetrics
}

// ReportsHandler serves the principal aggregate report and the admin
// system metrics snapshot.
type ReportsHandler struct {
	gateway principalReportGateway
	metrics systemMetricsSource
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(gateway principalReportGateway, metrics systemMetricsSource) *ReportsHandler {
	return &ReportsHandler{gateway: gateway, metrics: metrics}
}

// Principal godoc
// @Summary Institution-level aggregate report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/principal [get]
func (h *ReportsHandler) Principal(c *gin.Context) {
	report, err := h.gateway.PrincipalReports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if report == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrLoadFailed, "principal report unavailable"))
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// SystemMetrics godoc
// @Summary Runtime metrics snapshot
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/system [get]
func (h *ReportsHandler) SystemMetrics(c *gin.Context) {
	if h.metrics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot(), nil)
}
