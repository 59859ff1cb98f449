// Package security provides JWT token utilities
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// RoleEditor is the only role the editor API knows.
const RoleEditor = "editor"

var ErrInvalidToken = errors.New("invalid token")

// EditorClaims are the claims carried by an editor session token.
type EditorClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateEditorToken signs an HS256 token for subject that expires after ttl.
func GenerateEditorToken(subject, jwtSecret string, ttl time.Duration) (string, time.Time, error) {
	if jwtSecret == "" {
		return "", time.Time{}, errors.New("empty jwt secret")
	}
	now := time.Now().UTC()
	expires := now.Add(ttl)

	claims := EditorClaims{
		Role: RoleEditor,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        GenerateULID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateJWT checks signature, algorithm and expiry and returns the claims.
func ValidateJWT(tokenString, jwtSecret string) (*EditorClaims, error) {
	claims := &EditorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Role != RoleEditor {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
