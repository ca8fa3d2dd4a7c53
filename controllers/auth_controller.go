package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/dto"
	"github.com/rozeen-shrestha/confession/middleware"
	"github.com/rozeen-shrestha/confession/services"
	"go.uber.org/zap"
)

// POST /api/auth/login, JSON or form body
func Login(auth *services.AuthService, cookieSecure bool, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.LoginDTO
		if err := c.ShouldBind(&body); err != nil {
			badRequestBody(c)
			return
		}

		res, err := auth.Login(c.Request.Context(), body.Username, body.Password)
		if err != nil {
			writeError(c, log, err)
			return
		}

		http.SetCookie(c.Writer, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    res.Token,
			Path:     "/",
			MaxAge:   int(auth.SessionTTL().Seconds()),
			HttpOnly: true,
			Secure:   cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		c.JSON(http.StatusOK, gin.H{
			"user":        res.User,
			"accessToken": res.Token,
		})
	}
}

func Logout(cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// GET /api/auth/session
func Session(authorizer *middleware.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authorizer.Session(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": dto.SessionUserDTO{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		}})
	}
}
