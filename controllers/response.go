package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/services"
	"go.uber.org/zap"
)

const malformedQueryMessage = "Malformed query string. Use only one '?' and separate parameters with '&'. Example: ?username=helloooo&email=aa@aa.com"

var errorResponses = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrTextRequired, http.StatusBadRequest, "Text required"},
	{services.ErrRateLimited, http.StatusTooManyRequests, "Too many submissions. Please wait a minute before trying again."},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
	{services.ErrNotFound, http.StatusNotFound, "Confession not found"},
	{services.ErrInvalidID, http.StatusBadRequest, "Invalid confession id"},
	{services.ErrMalformedQuery, http.StatusBadRequest, malformedQueryMessage},
	{services.ErrPublishingDisabled, http.StatusServiceUnavailable, "Image publishing is not configured"},
}

// writeError maps service errors to a status and message. Anything unknown
// is logged and reported as a 500 without details.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			c.JSON(r.status, gin.H{"error": r.message})
			return
		}
	}
	log.Error("request failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString("requestID")),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func badRequestBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
