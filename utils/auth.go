// utils/auth.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionCookie carries the admin token for browser sessions.
	SessionCookie = "token"
	// RoleAdmin is the only role the dashboard accepts.
	RoleAdmin = "admin"

	LoginRedirect        = "/admin/login"
	UnauthorizedRedirect = "/admin/unauthorized"

	sessionKey = "session"
)

var ErrInvalidToken = errors.New("invalid token")

// Generate JWT secret key (used when none is configured outside release mode)
func GenerateJWTSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate JWT secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// AuthConfig holds everything needed to issue and check admin sessions.
type AuthConfig struct {
	Secret       string
	AdminEmail   string
	PasswordHash string
	TTL          time.Duration
	SecureCookie bool
}

// Session is the identity carried by a valid token.
type Session struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Generate JWT token
func GenerateToken(cfg AuthConfig, email, role string) (string, time.Time, error) {
	if cfg.Secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET not set")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	expires := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.ToLower(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	return signed, expires, err
}

// ParseToken verifies signature and expiry and returns the session.
func ParseToken(secret, tokenString string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	session := &Session{Email: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

// IsAuthorized reports whether session may use the admin dashboard.
func IsAuthorized(session *Session, adminEmail string) bool {
	if session == nil || adminEmail == "" {
		return false
	}
	return session.Role == RoleAdmin && strings.EqualFold(session.Email, adminEmail)
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(c *gin.Context) string {
	tokenString := c.GetHeader("Authorization")
	if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
		return strings.TrimSpace(tokenString[7:])
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// AdminRequired rejects requests without an admin session. Missing or
// invalid tokens get 401, valid tokens for anyone else get 403. Both carry
// the page the dashboard should redirect to.
func AdminRequired(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": LoginRedirect})
			return
		}

		session, err := ParseToken(cfg.Secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "redirect": LoginRedirect})
			return
		}

		if !IsAuthorized(session, cfg.AdminEmail) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required", "redirect": UnauthorizedRedirect})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session stored by AdminRequired.
func CurrentSession(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*Session)
	return session, ok
}
