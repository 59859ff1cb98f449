package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/services"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/performance"
	"github.com/AtRiskMedia/tractstack-hero/internal/presentation/http/middleware"
)

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AuthHandlers contains all authentication-related HTTP handlers
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostLogin handles POST /api/v1/auth/login - editor authentication
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("post_login_request", "")
	defer marker.Complete()
	h.logger.Auth().Debug("Received login request", "method", c.Request.Method, "path", c.Request.URL.Path)

	if !h.authService.Enabled() {
		c.JSON(http.StatusOK, gin.H{"success": true, "authRequired": false})
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.authService.Login(req.Password)
	if err != nil {
		marker.SetError(err)
		h.logger.Auth().Warn("Login attempt failed", "duration", time.Since(start))
		abortWithError(c, h.logger.Auth(), err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetCookie(
		middleware.EditorCookie,
		result.Token,
		maxAge,
		"/",
		"",
		c.Request.TLS != nil,
		true,
	)

	h.logger.Auth().Info("Login successful", "role", result.Role, "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"role":      result.Role,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}

// PostLogout handles POST /api/v1/auth/logout - clears the editor cookie
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	c.SetCookie(middleware.EditorCookie, "", -1, "/", "", false, true)
	h.logger.Auth().Info("Logout completed")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAuthStatus handles GET /api/v1/auth/status
func (h *AuthHandlers) GetAuthStatus(c *gin.Context) {
	if !h.authService.Enabled() {
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "authRequired": false})
		return
	}

	token := ""
	method := ""
	if header := c.GetHeader("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
		token, method = header[7:], "bearer"
	} else if cookie, err := c.Cookie(middleware.EditorCookie); err == nil && cookie != "" {
		token, method = cookie, "cookie"
	}

	response := gin.H{"authenticated": false, "authRequired": true}
	if token != "" {
		if claims, err := h.authService.Validate(token); err == nil {
			response["authenticated"] = true
			response["method"] = method
			response["role"] = claims.Role
			if claims.ExpiresAt != nil {
				response["expiresAt"] = claims.ExpiresAt.Time
			}
		}
	}
	c.JSON(http.StatusOK, response)
}
