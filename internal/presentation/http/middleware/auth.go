package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/security"
)

// EditorCookie carries the editor token for browser sessions.
const EditorCookie = "editor_auth"

const claimsKey = "editorClaims"

// EditorAuthenticator validates editor tokens.
type EditorAuthenticator interface {
	Enabled() bool
	Validate(token string) (*security.EditorClaims, error)
}

// EditorAuthMiddleware requires a valid editor token from the Authorization
// header or the editor cookie. It lets everything through when auth is disabled.
func EditorAuthMiddleware(auth EditorAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			c.Next()
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			if cookie, err := c.Cookie(EditorCookie); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}

		claims, err := auth.Validate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// GetEditorClaims returns the claims stored by EditorAuthMiddleware.
func GetEditorClaims(c *gin.Context) (*security.EditorClaims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*security.EditorClaims)
	return claims, ok
}

func bearerToken(header string) string {
	if len(header) > 7 && strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
