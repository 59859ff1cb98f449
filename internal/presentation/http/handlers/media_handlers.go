package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/services"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

// MediaHandlers exposes uploaded hero images.
type MediaHandlers struct {
	mediaService *services.MediaService
	logger       *logging.ChanneledLogger
}

func NewMediaHandlers(mediaService *services.MediaService, logger *logging.ChanneledLogger) *MediaHandlers {
	return &MediaHandlers{mediaService: mediaService, logger: logger}
}

// GetMedia handles GET /api/v1/media/:id - metadata and renditions
func (h *MediaHandlers) GetMedia(c *gin.Context) {
	item, err := h.mediaService.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger.Media(), err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteMedia handles DELETE /api/v1/media/:id
func (h *MediaHandlers) DeleteMedia(c *gin.Context) {
	id := c.Param("id")
	if err := h.mediaService.Delete(id); err != nil {
		abortWithError(c, h.logger.Media(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
