package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/services"
	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/media"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, hero.ErrBlockNotFound),
		errors.Is(err, hero.ErrUnknownVariant),
		errors.Is(err, services.ErrNotPublished),
		errors.Is(err, services.ErrMediaNotFound):
		return http.StatusNotFound
	case errors.Is(err, hero.ErrNoImage):
		return http.StatusConflict
	case errors.Is(err, media.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, services.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError logs err and writes the error body. Validation errors list
// each problem; internal errors are not echoed to the client.
func abortWithError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err.Error())
	} else {
		logger.Debug("Request rejected", "method", c.Request.Method, "path", c.Request.URL.Path, "status", status, "error", err.Error())
	}
	body := gin.H{"error": err.Error()}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		body["error"] = "invalid attributes"
		body["problems"] = verr.Problems()
	}
	if status == http.StatusInternalServerError {
		body["error"] = "internal server error"
	}
	c.AbortWithStatusJSON(status, body)
}
