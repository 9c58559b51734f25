package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridloal/smartshop-pos/internal/platform/apperr"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	"github.com/ridloal/smartshop-pos/internal/user/domain"
	"github.com/ridloal/smartshop-pos/internal/user/service"
)

// LogoutHook runs when an operator logs out, e.g. to discard their cart.
type LogoutHook func(username string)

type UserHandler struct {
	authService service.AuthService
	onLogout    LogoutHook
}

func NewUserHandler(as service.AuthService, onLogout LogoutHook) *UserHandler {
	return &UserHandler{authService: as, onLogout: onLogout}
}

// RegisterRoutes mounts login publicly and logout behind auth.
func (h *UserHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		logger.Error("Login: service error", err)
		c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *UserHandler) Logout(c *gin.Context) {
	session := SessionFrom(c)
	if err := h.authService.Revoke(c.GetString(tokenKey)); err != nil {
		logger.Warn("Logout: token not revoked", map[string]interface{}{"username": session.Username, "error": err.Error()})
	}
	if h.onLogout != nil {
		h.onLogout(session.Username)
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, SessionFrom(c))
}
