package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/services"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

// PreviewHandlers upgrades editor connections onto the preview hub.
type PreviewHandlers struct {
	hub         *messaging.PreviewHub
	heroService *services.HeroService
	upgrader    websocket.Upgrader
	logger      *logging.ChanneledLogger
}

// NewPreviewHandlers creates preview handlers accepting browser connections
// from allowedOrigins. Requests without an Origin header are accepted.
func NewPreviewHandlers(hub *messaging.PreviewHub, heroService *services.HeroService, allowedOrigins []string, logger *logging.ChanneledLogger) *PreviewHandlers {
	return &PreviewHandlers{
		hub:         hub,
		heroService: heroService,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// GetPreviewSocket handles GET /api/v1/blocks/:id/preview/ws
func (h *PreviewHandlers) GetPreviewSocket(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.heroService.Get(id); err != nil {
		abortWithError(c, h.logger.Preview(), err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already written the error response
		h.logger.Preview().Warn("Preview upgrade failed", "blockId", id, "error", err.Error())
		return
	}
	h.hub.Serve(conn, id)
}
