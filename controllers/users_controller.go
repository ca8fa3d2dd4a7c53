package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/dto"
	"github.com/rozeen-shrestha/confession/services"
	"go.uber.org/zap"
)

// GET /api/seed-admin?username=admin&email=admin@confession.com
func SeedAdmin(auth *services.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Count(c.Request.RequestURI, "?") > 1 || strings.Contains(c.Request.URL.RawQuery, "?") {
			writeError(c, log, services.ErrMalformedQuery)
			return
		}

		created, err := auth.SeedAdmin(c.Request.Context(), c.Query("username"), c.Query("email"))
		if err != nil {
			writeError(c, log, err)
			return
		}

		if !created {
			c.JSON(http.StatusOK, dto.SeedAdminResponse{Status: "exists", Message: "User already exists."})
			return
		}
		c.JSON(http.StatusOK, dto.SeedAdminResponse{Status: "created", Message: "Admin user created."})
	}
}
