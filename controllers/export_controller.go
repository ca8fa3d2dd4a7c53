package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/render"
	"github.com/rozeen-shrestha/confession/services"
	"github.com/rozeen-shrestha/confession/utils"
	"go.uber.org/zap"
)

// GET /api/confessions/:id/image (admin)
func GetConfessionImage(exp *services.ExportService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		png, confession, err := exp.CardPNG(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, render.Filename(confession.Name)))
		c.Data(http.StatusOK, "image/png", png)
	}
}

// GET /api/confessions/image?page=1&perPage=40 (admin)
func GetConfessionsImage(exp *services.ExportService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.ParseIntDefault(c.Query("page"), 1)
		perPage := utils.ParseIntDefault(c.Query("perPage"), 0)

		png, err := exp.PagePNG(c.Request.Context(), page, perPage)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="confessions.png"`)
		c.Data(http.StatusOK, "image/png", png)
	}
}

// POST /api/confessions/:id/publish (admin)
func PublishConfessionImage(exp *services.ExportService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := exp.Publish(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
