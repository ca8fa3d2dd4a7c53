package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/controllers"
	"github.com/rozeen-shrestha/confession/middleware"
	"github.com/rozeen-shrestha/confession/services"
	"github.com/rozeen-shrestha/confession/web"
	"go.uber.org/zap"
)

// Deps is everything the router hands to controllers.
type Deps struct {
	Confessions    *services.ConfessionService
	Auth           *services.AuthService
	Export         *services.ExportService
	Authorizer     *middleware.Authorizer
	AllowedOrigins []string
	CookieSecure   bool
	MaxTextLength  int
	DefaultPerPage int
	Log            *zap.Logger
}

func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	allowedOrigins := map[string]bool{}
	for _, origin := range d.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	r.GET("/", controllers.IndexPage(d.MaxTextLength))
	r.GET("/login", controllers.LoginPage())

	pages := r.Group("/admin")
	pages.Use(d.Authorizer.RequireAdminPage())
	{
		pages.GET("", controllers.AdminPage(d.DefaultPerPage))
		pages.GET("/*rest", controllers.AdminNotFound())
	}

	api := r.Group("/api")
	{
		api.POST("/confessions", controllers.CreateConfession(d.Confessions, d.Log))
		api.GET("/seed-admin", controllers.SeedAdmin(d.Auth, d.Log))

		api.POST("/auth/login", controllers.Login(d.Auth, d.CookieSecure, d.Log))
		api.POST("/auth/logout", controllers.Logout(d.CookieSecure))
		api.GET("/auth/session", controllers.Session(d.Authorizer))
	}

	admin := api.Group("")
	admin.Use(d.Authorizer.RequireAdminJSON())
	{
		admin.GET("/confessions", controllers.GetConfessions(d.Confessions, d.Log))
		admin.GET("/confessions/image", controllers.GetConfessionsImage(d.Export, d.Log))
		admin.GET("/confessions/:id/image", controllers.GetConfessionImage(d.Export, d.Log))
		admin.POST("/confessions/:id/publish", controllers.PublishConfessionImage(d.Export, d.Log))
	}

	return r, nil
}
