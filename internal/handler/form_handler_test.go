package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Zulu-012/luct-reporting-system/internal/dto"
	internalmiddleware "github.com/Zulu-012/luct-reporting-system/internal/middleware"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
	appErrors "github.com/Zulu-012/luct-reporting-system/pkg/errors"
)

func TestFormStartRoutesIntegration(t *testing.T) {
	router := buildFormRouter()

	t.Run("lecturer opens a session", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/report-form", nil)
		req.Header.Set("X-Test-Role", string(models.RoleLecturer))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)
		require.Contains(t, resp.Body.String(), `"session"`)
	})

	t.Run("student is steered to the rating flow", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/report-form", nil)
		req.Header.Set("X-Test-Role", string(models.RoleStudent))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusForbidden, resp.Code)
		require.Contains(t, resp.Body.String(), appErrors.ErrStudentRatingFlow.Code)
		require.Equal(t, APIPrefix+"/ratings/lectures", resp.Header().Get("Location"))
	})

	t.Run("admin is denied without a redirect", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/report-form", nil)
		req.Header.Set("X-Test-Role", string(models.RoleAdmin))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusForbidden, resp.Code)
		require.Contains(t, resp.Body.String(), appErrors.ErrForbidden.Code)
		require.Empty(t, resp.Header().Get("Location"))
	})
}

func buildFormRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			c.Set(internalmiddleware.ContextSessionKey, models.Session{
				User: models.User{ID: 9, Role: models.Role(role)},
			})
		}
		c.Next()
	})

	handler := NewFormHandler(&formIntegrationMock{})
	router.POST("/report-form", handler.Start)
	return router
}

type formIntegrationMock struct{}

func (formIntegrationMock) Start(ctx context.Context, sess models.Session) (*dto.StartFormResponse, error) {
	switch sess.User.Role {
	case models.RoleStudent:
		return nil, appErrors.ErrStudentRatingFlow
	case models.RoleLecturer, models.RolePrincipalLecturer:
		return &dto.StartFormResponse{
			Session: dto.FormSession{ID: "sess-1", UserID: sess.User.ID, Step: dto.FormStepBasicInfo},
		}, nil
	default:
		return nil, appErrors.ErrForbidden
	}
}

func (formIntegrationMock) Get(ctx context.Context, sess models.Session, id string) (*dto.FormSession, error) {
	return nil, appErrors.ErrFormSessionExpired
}

func (formIntegrationMock) Advance(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.FormSession, error) {
	return nil, appErrors.ErrFormSessionExpired
}

func (formIntegrationMock) Back(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.FormSession, error) {
	return nil, appErrors.ErrFormSessionExpired
}

func (formIntegrationMock) Submit(ctx context.Context, sess models.Session, id string, in dto.FormFields) (*dto.SubmitFormResponse, error) {
	return nil, appErrors.ErrFormSessionExpired
}
