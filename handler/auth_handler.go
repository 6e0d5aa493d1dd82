package handler

import (
	"errors"
	"net/http"

	"github.com/RigelNana/arkstudy/services/admin-service/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	auth service.AuthService
	log  *logrus.Logger
}

func NewAuthHandler(auth service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login POST /api/login，只校验账号密码，不签发 token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid login data", "error": "username and password are required"})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.log.WithField("username", req.Username).Warn("AuthHandler Login: invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}
	if err != nil {
		serverError(c, h.log, "Failed to log in", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}
