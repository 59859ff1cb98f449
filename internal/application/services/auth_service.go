package services

import (
	"errors"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/security"
)

// ErrInvalidCredentials is returned for a wrong editor password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthResult holds authentication result data
type AuthResult struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService checks the editor password and issues session tokens.
type AuthService struct {
	passwordHash string
	jwtSecret    string
	ttl          time.Duration
	logger       *logging.ChanneledLogger
}

func NewAuthService(passwordHash, jwtSecret string, ttl time.Duration, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		ttl:          ttl,
		logger:       logger,
	}
}

// Enabled reports whether an editor password is configured. Without one the
// editor API is open.
func (a *AuthService) Enabled() bool {
	return a.passwordHash != ""
}

// Login exchanges the editor password for a token.
func (a *AuthService) Login(password string) (*AuthResult, error) {
	if err := security.CheckPassword(a.passwordHash, password); err != nil {
		a.logger.Auth().Warn("Editor login failed")
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, expires, err := security.GenerateEditorToken(security.RoleEditor, a.jwtSecret, a.ttl)
	if err != nil {
		return nil, err
	}
	a.logger.Auth().Info("Editor logged in", "expiresAt", expires)
	return &AuthResult{Token: token, Role: security.RoleEditor, ExpiresAt: expires}, nil
}

// Validate checks an editor token.
func (a *AuthService) Validate(token string) (*security.EditorClaims, error) {
	return security.ValidateJWT(token, a.jwtSecret)
}
