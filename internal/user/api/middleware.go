package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/smartshop-pos/internal/user/domain"
	"github.com/ridloal/smartshop-pos/internal/user/service"
)

const (
	sessionKey = "session"
	tokenKey   = "token"
)

// AuthMiddleware requires a Bearer token issued by Login.
func AuthMiddleware(as service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		session, err := as.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(tokenKey, token)
		SetSession(c, *session)
		c.Next()
	}
}

func SetSession(c *gin.Context, s domain.Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the operator set by AuthMiddleware, or a zero Session.
func SessionFrom(c *gin.Context) domain.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.Session); ok {
			return s
		}
	}
	return domain.Session{}
}
