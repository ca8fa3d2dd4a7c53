package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rozeen-shrestha/confession/models"
	"github.com/rozeen-shrestha/confession/utils"
)

const SessionCookieName = "confession_session"

// Authorizer resolves the session on a request. The admin pages and the
// admin API share one instance so both apply the same rule.
type Authorizer struct {
	secret []byte
}

func NewAuthorizer(secret []byte) *Authorizer {
	return &Authorizer{secret: secret}
}

// Session returns the claims of a valid session cookie or bearer token.
func (a *Authorizer) Session(c *gin.Context) (*utils.Claims, bool) {
	tokenStr := ""
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		tokenStr = cookie
	} else if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		tokenStr = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenStr == "" {
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenStr, a.secret)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func (a *Authorizer) admin(c *gin.Context) bool {
	claims, ok := a.Session(c)
	if !ok || claims.Role != string(models.RoleAdmin) {
		return false
	}
	c.Set("userID", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	return true
}

// RequireAdminJSON answers 403 for anything but an admin session.
func (a *Authorizer) RequireAdminJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.admin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// RequireAdminPage redirects anything but an admin session to the login page.
func (a *Authorizer) RequireAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.admin(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
