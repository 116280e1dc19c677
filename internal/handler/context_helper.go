package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Zulu-012/luct-reporting-system/internal/middleware"
	"github.com/Zulu-012/luct-reporting-system/internal/models"
)

func sessionFromContext(c *gin.Context) models.Session {
	return middleware.SessionFrom(c)
}
