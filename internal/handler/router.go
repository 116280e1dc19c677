package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/middleware"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	"github.com/Zulu-012/luct-reporting-system/internal/service"
)

// APIPrefix is the versioned base path for every route below.
const APIPrefix = "/api/v1"

// Handlers bundles the constructed handlers for route registration.
type Handlers struct {
	Dashboard  *DashboardHandler
	Navigation *NavigationHandler
	Monitoring *MonitoringHandler
	Form       *FormHandler
	Rating     *RatingHandler
	Class      *ClassHandler
	Reports    *ReportsHandler
}

// RegisterRoutes mounts the API under APIPrefix. Every route requires a
// valid session; role gates narrow the mutating and role-specific ones.
// Services still re-check permissions so the middleware is not the only
// line of defence.
func RegisterRoutes(r *gin.Engine, h Handlers, authService *service.AuthService) {
	api := r.Group(APIPrefix)
	api.Use(middleware.Session(authService))

	api.GET("/dashboard", h.Dashboard.Load)

	api.GET("/navigation", h.Navigation.State)
	api.POST("/navigation/select", h.Navigation.Select)
	api.DELETE("/navigation", h.Navigation.Logout)

	api.GET("/monitoring", h.Monitoring.List)
	api.GET("/monitoring/export", h.Monitoring.Export)

	mutate := api.Group("/monitoring/lectures")
	mutate.Use(middleware.RequireRoles(models.RoleLecturer, models.RoleProgramLeader, models.RoleAdmin))
	mutate.PUT("/:id", h.Monitoring.Update)
	mutate.DELETE("/:id", h.Monitoring.Delete)

	// Students pass the role gate so Start can answer with the rating-flow
	// redirect instead of a bare 403; the service holds the real gate.
	form := api.Group("/report-form")
	form.Use(middleware.RequireRoles(models.RoleLecturer, models.RolePrincipalLecturer, models.RoleStudent))
	form.POST("", h.Form.Start)
	form.GET("/:id", h.Form.Get)
	form.POST("/:id/next", h.Form.Advance)
	form.POST("/:id/back", h.Form.Back)
	form.POST("/:id/submit", h.Form.Submit)

	ratings := api.Group("/ratings")
	ratings.Use(middleware.RequireRoles(models.RoleStudent))
	ratings.GET("/lectures", h.Rating.Lectures)
	ratings.POST("", h.Rating.Rate)
	ratings.POST("/feedback", h.Rating.Feedback)

	api.GET("/classes", h.Class.List)

	api.GET("/reports/principal", middleware.RequireRoles(models.RolePrincipalLecturer, models.RoleAdmin), h.Reports.Principal)
	api.GET("/reports/system", middleware.RequireRoles(models.RoleAdmin), h.Reports.SystemMetrics)
}
