package hero

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

type MediaRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewMediaRepository(db *sql.DB, logger *logging.ChanneledLogger) *MediaRepository {
	return &MediaRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MediaRepository) FindByID(id string) (*hero.Media, error) {
	query := `SELECT id, filename, url, mime_type, width, height, renditions, created FROM hero_media WHERE id = ?`

	var media hero.Media
	var renditions sql.NullString
	var created string

	err := r.db.QueryRow(query, id).Scan(&media.ID, &media.Filename, &media.URL, &media.MimeType,
		&media.Width, &media.Height, &renditions, &created)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan media", "error", err.Error(), "id", id)
		return nil, fmt.Errorf("failed to scan media: %w", err)
	}

	if renditions.Valid && renditions.String != "" {
		if err := json.Unmarshal([]byte(renditions.String), &media.Renditions); err != nil {
			return nil, fmt.Errorf("failed to parse media renditions: %w", err)
		}
	}
	if media.Created, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("failed to parse media created time: %w", err)
	}
	return &media, nil
}

func (r *MediaRepository) Store(media *hero.Media) error {
	renditionsJSON, err := json.Marshal(media.Renditions)
	if err != nil {
		return fmt.Errorf("failed to marshal renditions: %w", err)
	}

	query := `INSERT INTO hero_media (id, filename, url, mime_type, width, height, renditions, created)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	start := time.Now()
	_, err = r.db.Exec(query, media.ID, media.Filename, media.URL, media.MimeType,
		media.Width, media.Height, string(renditionsJSON), media.Created.UTC().Format(timeLayout))
	if err != nil {
		r.logger.Database().Error("Media insert failed", "error", err.Error(), "id", media.ID)
		return fmt.Errorf("failed to insert media: %w", err)
	}

	r.logger.Database().Info("Media insert completed", "id", media.ID, "duration", time.Since(start))
	return nil
}

func (r *MediaRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM hero_media WHERE id = ?`, id); err != nil {
		r.logger.Database().Error("Media delete failed", "error", err.Error(), "id", id)
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}
