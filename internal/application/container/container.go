// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/AtRiskMedia/tractstack-hero/internal/application/services"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/cleanup"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/stores"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/database"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/media"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/performance"
	persistence "github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/persistence/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/variants"
	"github.com/AtRiskMedia/tractstack-hero/internal/presentation/templates"
	"github.com/AtRiskMedia/tractstack-hero/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services
	HeroService  *services.HeroService
	MediaService *services.MediaService
	AuthService  *services.AuthService

	// Rendering
	Registry *variants.Registry
	Renderer *templates.HeroRenderer

	// Infrastructure Dependencies
	Database      *database.Database
	BlocksCache   *stores.BlocksStore
	FragmentCache *stores.FragmentsStore
	CleanupWorker *cleanup.Worker
	PreviewHub    *messaging.PreviewHub
	Logger        *logging.ChanneledLogger
	PerfTracker   *performance.Tracker
}

// Options carries the pieces built during startup. Notifier may be nil.
type Options struct {
	Database  *database.Database
	Registry  *variants.Registry
	Notifier  services.PublishNotifier
	JWTSecret string
	Logger    *logging.ChanneledLogger
}

// NewContainer creates and wires all singleton services
func NewContainer(opts Options) *Container {
	logger := opts.Logger
	conn := opts.Database.Conn

	blocksCache := stores.NewBlocksStore(config.RenderCacheTTL)
	fragmentCache := stores.NewFragmentsStore(config.RenderCacheTTL)
	previewHub := messaging.NewPreviewHub(config.PreviewQueueSize, logger)

	var minifier *templates.Minifier
	if config.MinifyPublished {
		minifier = templates.NewMinifier()
	}
	renderer := templates.NewHeroRenderer(minifier, logger)

	mediaService := services.NewMediaService(
		persistence.NewMediaRepository(conn, logger),
		media.NewImageProcessor(config.MediaDir, config.MediaURLPrefix, config.RenditionWidths, config.WebPQuality),
		int64(config.MaxUploadMB)<<20,
		logger,
	)

	heroService := services.NewHeroService(
		persistence.NewBlockRepository(conn, blocksCache, logger),
		opts.Registry,
		renderer,
		fragmentCache,
		mediaService,
		previewHub,
		opts.Notifier,
		logger,
	)

	return &Container{
		HeroService:  heroService,
		MediaService: mediaService,
		AuthService:  services.NewAuthService(config.EditorPasswordHash, opts.JWTSecret, config.TokenTTL, logger),

		Registry: opts.Registry,
		Renderer: renderer,

		Database:      opts.Database,
		BlocksCache:   blocksCache,
		FragmentCache: fragmentCache,
		CleanupWorker: cleanup.NewWorker(config.CleanupInterval, logger, blocksCache, fragmentCache),
		PreviewHub:    previewHub,
		Logger:        logger,
		PerfTracker:   performance.NewTracker(performance.DefaultTrackerConfig(), logger),
	}
}
