package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type pageData struct {
	Title         string
	MaxLength     int
	PerPageChoice []int
	DefaultPer    int
}

var perPagePresets = []int{10, 20, 40, 80, 100}

func IndexPage(maxLength int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", pageData{Title: "Confess", MaxLength: maxLength})
	}
}

func LoginPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", pageData{Title: "Admin login"})
	}
}

// GET /admin, behind the page guard
func AdminPage(defaultPerPage int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin.html", pageData{
			Title:         "Confessions",
			PerPageChoice: perPagePresets,
			DefaultPer:    defaultPerPage,
		})
	}
}

// Unknown paths under /admin. Registered behind the guard so anonymous
// visitors are redirected before they learn what exists.
func AdminNotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusNotFound, "404 page not found")
	}
}
