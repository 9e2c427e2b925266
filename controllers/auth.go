// controllers/auth.go
package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"glamstudio-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	auth   utils.AuthConfig
	logger *slog.Logger
}

func NewAuthController(auth utils.AuthConfig, logger *slog.Logger) *AuthController {
	return &AuthController{auth: auth, logger: logger}
}

func (ac *AuthController) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookie, value, maxAge, "/", "", ac.auth.SecureCookie, true)
}

// Login checks the admin credentials and starts a session
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if ac.auth.AdminEmail == "" || ac.auth.PasswordHash == "" ||
		email != ac.auth.AdminEmail ||
		!utils.CheckPasswordHash(input.Password, ac.auth.PasswordHash) {
		ac.logger.Warn("admin login rejected", "email", email, "ip", c.ClientIP())
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, expires, err := utils.GenerateToken(ac.auth, email, utils.RoleAdmin)
	if err != nil {
		ac.logger.Error("token generation failed", "error", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Could not generate token")
		return
	}

	ac.setCookie(c, token, int(time.Until(expires).Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"session": utils.Session{
			Email:     email,
			Role:      utils.RoleAdmin,
			ExpiresAt: expires,
		},
	})
}

// Logout clears the session cookie. Bearer tokens simply expire.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.setCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the current admin session
func (ac *AuthController) Me(c *gin.Context) {
	session, ok := utils.CurrentSession(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	c.JSON(http.StatusOK, session)
}
