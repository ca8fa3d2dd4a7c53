package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/dto"
	"github.com/rozeen-shrestha/confession/services"
	"github.com/rozeen-shrestha/confession/utils"
	"go.uber.org/zap"
)

// POST /api/confessions (public)
func CreateConfession(svc *services.ConfessionService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateConfessionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequestBody(c)
			return
		}

		confession, err := svc.Submit(c.Request.Context(), services.Submission{
			Text:         body.Text,
			ForwardedFor: c.GetHeader("X-Forwarded-For"),
			UserAgent:    c.GetHeader("User-Agent"),
		})
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"confession": confession})
	}
}

// GET /api/confessions?page=1&perPage=40 (admin)
func GetConfessions(svc *services.ConfessionService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.ParseIntDefault(c.Query("page"), 1)
		perPage := utils.ParseIntDefault(c.Query("perPage"), 0)

		res, err := svc.List(c.Request.Context(), page, perPage)
		if err != nil {
			writeError(c, log, err)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}
