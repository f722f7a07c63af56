package middleware

import (
	"net/http"
	"strings"
	"time"

	"dashboard/auth"
	"dashboard/model"

	"github.com/gin-gonic/gin"
)

// refreshWindow is how close to expiry a session gets re-issued
const refreshWindow = auth.TokenTTL / 2

func AuthMiddleware(isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(auth.CookieName)
		if err != nil || tokenString == "" {
			tokenString = bearerToken(c.GetHeader("Authorization"))
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		// --- SLIDING EXPIRY ---
		if time.Until(claims.ExpiresAt.Time) < refreshWindow {
			if newToken, err := auth.GenerateToken(claims.User); err == nil {
				c.SetCookie(auth.CookieName, newToken, int(auth.TokenTTL.Seconds()), "/", "", isProduction, true)
			}
		}

		c.Set("user", claims.User)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c)

		if !ok || user.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: Admin access required"})
			return
		}

		c.Next()
	}
}

// GetUser is a helper to extract the DTO from the context safely
func GetUser(c *gin.Context) (model.UserDto, bool) {
	val, exists := c.Get("user")
	if !exists {
		return model.UserDto{}, false
	}

	user, ok := val.(model.UserDto)
	return user, ok
}

func bearerToken(header string) string {
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// SessionCookie builds the HttpOnly cookie carrying token. An empty token
// clears the session.
func SessionCookie(token string, isProduction bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL.Seconds()),
		Secure:   isProduction,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
