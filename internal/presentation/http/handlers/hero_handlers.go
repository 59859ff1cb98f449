// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/services"
	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/performance"
)

// RenderRequest is the body of a stateless render.
type RenderRequest struct {
	Variant    string     `json:"variant"`
	Attributes hero.Patch `json:"attributes"`
}

// CreateBlockRequest is the body for creating a block.
type CreateBlockRequest struct {
	Variant    string      `json:"variant"`
	Attributes *hero.Patch `json:"attributes"`
}

// HeroHandlers contains all hero block HTTP handlers
type HeroHandlers struct {
	heroService *services.HeroService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewHeroHandlers creates hero handlers with injected dependencies
func NewHeroHandlers(heroService *services.HeroService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *HeroHandlers {
	return &HeroHandlers{
		heroService: heroService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetVariants handles GET /api/v1/variants
func (h *HeroHandlers) GetVariants(c *gin.Context) {
	list := h.heroService.Variants()
	c.JSON(http.StatusOK, gin.H{
		"variants": list,
		"count":    len(list),
	})
}

// GetInspector handles GET /api/v1/variants/:name/inspector
func (h *HeroHandlers) GetInspector(c *gin.Context) {
	inspector, err := h.heroService.Inspector(c.Param("name"))
	if err != nil {
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.JSON(http.StatusOK, inspector)
}

// PostRender handles POST /api/v1/render - maps attributes to presentation and markup without storing anything
func (h *HeroHandlers) PostRender(c *gin.Context) {
	marker := h.perfTracker.StartOperation("render_request", "")
	defer marker.Complete()

	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.heroService.RenderPatch(req.Variant, req.Attributes)
	if err != nil {
		marker.SetError(err)
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PostBlock handles POST /api/v1/blocks
func (h *HeroHandlers) PostBlock(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("create_block_request", "")
	defer marker.Complete()

	var req CreateBlockRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			marker.SetError(err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}
	}

	block, err := h.heroService.Create(req.Variant, req.Attributes)
	if err != nil {
		marker.SetError(err)
		abortWithError(c, h.logger.Content(), err)
		return
	}

	h.logger.Content().Info("Create block request completed", "blockId", block.ID, "duration", time.Since(start))
	c.JSON(http.StatusCreated, block)
}

// GetBlocks handles GET /api/v1/blocks
func (h *HeroHandlers) GetBlocks(c *gin.Context) {
	blocks, err := h.heroService.List()
	if err != nil {
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"blocks": blocks,
		"count":  len(blocks),
	})
}

// GetBlock handles GET /api/v1/blocks/:id
func (h *HeroHandlers) GetBlock(c *gin.Context) {
	block, err := h.heroService.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.JSON(http.StatusOK, block)
}

// DeleteBlock handles DELETE /api/v1/blocks/:id
func (h *HeroHandlers) DeleteBlock(c *gin.Context) {
	id := c.Param("id")
	if err := h.heroService.Delete(id); err != nil {
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// PatchAttributes handles PATCH /api/v1/blocks/:id/attributes - merges a partial attribute update
func (h *HeroHandlers) PatchAttributes(c *gin.Context) {
	id := c.Param("id")
	marker := h.perfTracker.StartOperation("set_attributes_request", id)
	defer marker.Complete()

	var patch hero.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	attrs, err := h.heroService.SetAttributes(id, patch)
	if err != nil {
		marker.SetError(err)
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "attributes": attrs})
}

// PostMedia handles POST /api/v1/blocks/:id/media - multipart upload in the "file" field
func (h *HeroHandlers) PostMedia(c *gin.Context) {
	id := c.Param("id")
	start := time.Now()
	marker := h.perfTracker.StartOperation("select_media_request", id)
	defer marker.Complete()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		marker.SetError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	upload, err := readUpload(fileHeader)
	if err != nil {
		marker.SetError(err)
		abortWithError(c, h.logger.Media(), err)
		return
	}

	selection, err := h.heroService.SelectMedia(id, upload)
	if err != nil {
		marker.SetError(err)
		abortWithError(c, h.logger.Media(), err)
		return
	}

	h.logger.Media().Info("Select media request completed", "blockId", id, "mediaId", selection.ID, "duration", time.Since(start))
	c.JSON(http.StatusOK, selection)
}

// DeleteMedia handles DELETE /api/v1/blocks/:id/media
func (h *HeroHandlers) DeleteMedia(c *gin.Context) {
	id := c.Param("id")
	attrs, err := h.heroService.ClearMedia(id)
	if err != nil {
		abortWithError(c, h.logger.Media(), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "attributes": attrs})
}

// GetEditor handles GET /api/v1/blocks/:id/editor - editor markup fragment
func (h *HeroHandlers) GetEditor(c *gin.Context) {
	id := c.Param("id")
	marker := h.perfTracker.StartOperation("editor_html_request", id)
	defer marker.Complete()

	html, err := h.heroService.EditorHTML(id)
	if err != nil {
		marker.SetError(err)
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetPresentation handles GET /api/v1/blocks/:id/presentation
func (h *HeroHandlers) GetPresentation(c *gin.Context) {
	presentation, err := h.heroService.Presentation(c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.JSON(http.StatusOK, presentation)
}

// PostPublish handles POST /api/v1/blocks/:id/publish
func (h *HeroHandlers) PostPublish(c *gin.Context) {
	id := c.Param("id")
	start := time.Now()
	marker := h.perfTracker.StartOperation("publish_request", id)
	defer marker.Complete()

	block, err := h.heroService.Publish(id)
	if err != nil {
		marker.SetError(err)
		abortWithError(c, h.logger.Content(), err)
		return
	}

	h.logger.Content().Info("Publish request completed", "blockId", id, "duration", time.Since(start))
	c.JSON(http.StatusOK, block)
}

// GetPublished handles GET /blocks/:id - the published static markup, public
func (h *HeroHandlers) GetPublished(c *gin.Context) {
	html, err := h.heroService.PublishedHTML(c.Param("id"))
	if err != nil {
		abortWithError(c, h.logger.Content(), err)
		return
	}
	c.Header("Cache-Control", "public, max-age=60")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func readUpload(fileHeader *multipart.FileHeader) (services.MediaUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return services.MediaUpload{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return services.MediaUpload{}, fmt.Errorf("failed to read upload: %w", err)
	}
	return services.MediaUpload{Filename: fileHeader.Filename, Data: data}, nil
}
