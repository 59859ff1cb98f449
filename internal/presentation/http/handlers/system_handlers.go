package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/database"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/performance"
)

// LogLevelRequest changes the level of one logging channel.
type LogLevelRequest struct {
	Channel string `json:"channel" binding:"required"`
	Level   string `json:"level" binding:"required"`
}

// SystemHandlers exposes health, operation stats and log levels.
type SystemHandlers struct {
	db          *database.Database
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewSystemHandlers(db *database.Database, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *SystemHandlers {
	return &SystemHandlers{db: db, logger: logger, perfTracker: perfTracker}
}

// GetHealth handles GET /api/v1/health
func (h *SystemHandlers) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetStats handles GET /api/v1/system/stats
func (h *SystemHandlers) GetStats(c *gin.Context) {
	response := gin.H{"performance": h.perfTracker.TakeSnapshot()}
	if h.db != nil {
		response["database"] = gin.H{
			"backend": h.db.GetConnectionInfo(),
			"pool":    h.db.Stats(),
		}
	}
	c.JSON(http.StatusOK, response)
}

// GetLogLevels handles GET /api/v1/system/logs/levels
func (h *SystemHandlers) GetLogLevels(c *gin.Context) {
	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}

// PostLogLevel handles POST /api/v1/system/logs/levels
func (h *SystemHandlers) PostLogLevel(c *gin.Context) {
	var req LogLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := h.logger.SetChannelLevel(logging.Channel(req.Channel), logging.ParseLevel(req.Level)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.logger.GetChannelLevels())
}
