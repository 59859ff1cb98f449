package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/domain/repositories"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/media"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/security"
)

var (
	// ErrUploadTooLarge is returned for uploads over the configured limit.
	ErrUploadTooLarge = errors.New("upload too large")
	ErrMediaNotFound  = errors.New("media not found")
)

// MediaService stores uploaded background images.
type MediaService struct {
	mediaRepo repositories.MediaRepository
	processor *media.ImageProcessor
	maxBytes  int64
	logger    *logging.ChanneledLogger
}

func NewMediaService(mediaRepo repositories.MediaRepository, processor *media.ImageProcessor, maxBytes int64, logger *logging.ChanneledLogger) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		processor: processor,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

// Upload sniffs, stores and records one image.
func (s *MediaService) Upload(upload MediaUpload) (*hero.Media, error) {
	if s.maxBytes > 0 && int64(len(upload.Data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrUploadTooLarge, len(upload.Data), s.maxBytes)
	}

	start := time.Now()
	id := security.GenerateULID()

	processed, err := s.processor.ProcessUpload(upload.Data, upload.Filename, id)
	if err != nil {
		s.logger.Media().Warn("Upload rejected", "filename", upload.Filename, "error", err.Error())
		return nil, err
	}

	item := &hero.Media{
		ID:         id,
		Filename:   processed.Filename,
		URL:        processed.URL,
		MimeType:   processed.MimeType,
		Width:      processed.Width,
		Height:     processed.Height,
		Renditions: processed.Renditions,
		Created:    time.Now().UTC(),
	}
	if err := s.mediaRepo.Store(item); err != nil {
		if cleanupErr := s.processor.Delete(mediaURLs(item)...); cleanupErr != nil {
			s.logger.Media().Warn("Failed to clean up media files", "mediaId", id, "error", cleanupErr.Error())
		}
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	s.logger.Media().Info("Media uploaded", "mediaId", id, "filename", item.Filename,
		"width", item.Width, "height", item.Height, "renditions", len(item.Renditions), "duration", time.Since(start))
	return item, nil
}

func (s *MediaService) Get(id string) (*hero.Media, error) {
	item, err := s.mediaRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get media %s: %w", id, err)
	}
	if item == nil {
		return nil, ErrMediaNotFound
	}
	return item, nil
}

// Delete removes the media row and its files. Blocks still pointing at the
// image keep their URL.
func (s *MediaService) Delete(id string) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.mediaRepo.Delete(id); err != nil {
		return err
	}
	if err := s.processor.Delete(mediaURLs(item)...); err != nil {
		s.logger.Media().Warn("Failed to remove media files", "mediaId", id, "error", err.Error())
	}
	s.logger.Media().Info("Media deleted", "mediaId", id)
	return nil
}

func mediaURLs(item *hero.Media) []string {
	urls := []string{item.URL}
	for _, u := range item.Renditions {
		urls = append(urls, u)
	}
	return urls
}
