// Package services provides application-level services that orchestrate
// business logic and coordinate between repositories and domain entities.
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/domain/repositories"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/caching/interfaces"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/security"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/variants"
	"github.com/AtRiskMedia/tractstack-hero/internal/presentation/templates"
)

// ErrNotPublished is returned when published markup is requested for a draft.
var ErrNotPublished = errors.New("hero block is not published")

// ValidationError carries every problem found in an attribute patch.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid attributes: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Problems lists the individual validation failures.
func (e *ValidationError) Problems() []string {
	errs := multierr.Errors(e.Err)
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}

// MediaUpload is a file handed to SelectMedia.
type MediaUpload struct {
	Filename string
	Data     []byte
}

// HostAdapter is everything an editor host needs from a block: read the
// attribute snapshot, patch it, and pick its background image.
type HostAdapter interface {
	GetAttributes(id string) (hero.Attributes, error)
	SetAttributes(id string, patch hero.Patch) (hero.Attributes, error)
	SelectMedia(id string, upload MediaUpload) (hero.MediaSelection, error)
}

// PublishNotifier is told about every successful publish.
type PublishNotifier interface {
	NotifyPublished(block *hero.Block) error
}

// RenderResult is a stateless render of one attribute snapshot.
type RenderResult struct {
	Variant      string            `json:"variant"`
	HasImage     bool              `json:"hasImage"`
	Presentation hero.Presentation `json:"presentation"`
	EditorHTML   string            `json:"editorHtml"`
	StaticHTML   string            `json:"staticHtml"`
}

// HeroService orchestrates hero block editing, rendering and publishing.
type HeroService struct {
	blockRepo    repositories.BlockRepository
	variants     *variants.Registry
	renderer     *templates.HeroRenderer
	fragments    interfaces.FragmentCache
	mediaService *MediaService
	preview      messaging.PreviewPublisher
	notifier     PublishNotifier
	logger       *logging.ChanneledLogger
	now          func() time.Time
}

var _ HostAdapter = (*HeroService)(nil)

// NewHeroService creates the block service. preview and notifier may be nil.
func NewHeroService(
	blockRepo repositories.BlockRepository,
	registry *variants.Registry,
	renderer *templates.HeroRenderer,
	fragments interfaces.FragmentCache,
	mediaService *MediaService,
	preview messaging.PreviewPublisher,
	notifier PublishNotifier,
	logger *logging.ChanneledLogger,
) *HeroService {
	return &HeroService{
		blockRepo:    blockRepo,
		variants:     registry,
		renderer:     renderer,
		fragments:    fragments,
		mediaService: mediaService,
		preview:      preview,
		notifier:     notifier,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Variants returns the registered variants.
func (s *HeroService) Variants() []hero.Variant {
	return s.variants.List()
}

// Inspector returns the editor control schema of a variant.
func (s *HeroService) Inspector(variantName string) (hero.Inspector, error) {
	v, err := s.variants.Get(variantName)
	if err != nil {
		return hero.Inspector{}, err
	}
	return v.Inspector(), nil
}

// Render maps and renders attrs without touching storage.
func (s *HeroService) Render(variantName string, attrs hero.Attributes) (*RenderResult, error) {
	v, err := s.variants.Resolve(variantName)
	if err != nil {
		return nil, err
	}
	return s.render("", v, attrs)
}

// RenderPatch validates patch, applies it over the variant defaults and renders
// the result.
func (s *HeroService) RenderPatch(variantName string, patch hero.Patch) (*RenderResult, error) {
	v, err := s.variants.Resolve(variantName)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(v); err != nil {
		return nil, &ValidationError{Err: err}
	}
	return s.render("", v, patch.Apply(v.NewAttributes()))
}

func (s *HeroService) render(blockID string, v hero.Variant, attrs hero.Attributes) (*RenderResult, error) {
	editorHTML, err := s.renderer.RenderEditor(blockID, v, attrs)
	if err != nil {
		return nil, err
	}
	staticHTML, err := s.renderer.RenderStatic(v, attrs)
	if err != nil {
		return nil, err
	}
	presentation := s.renderer.Presentation(v, attrs)
	return &RenderResult{
		Variant:      v.Name,
		HasImage:     len(presentation.BackgroundImageStyle) > 0,
		Presentation: presentation,
		EditorHTML:   editorHTML,
		StaticHTML:   staticHTML,
	}, nil
}

// Create inserts a block of the given variant with the variant's defaults and
// an optional initial patch.
func (s *HeroService) Create(variantName string, initial *hero.Patch) (*hero.Block, error) {
	v, err := s.variants.Resolve(variantName)
	if err != nil {
		return nil, err
	}

	attrs := v.NewAttributes()
	if initial != nil && !initial.IsEmpty() {
		if err := initial.Validate(v); err != nil {
			return nil, &ValidationError{Err: err}
		}
		attrs = initial.Apply(attrs)
	}

	now := s.now()
	block := &hero.Block{
		ID:         security.GenerateULID(),
		Variant:    v.Name,
		Attributes: attrs,
		Created:    now,
		Changed:    now,
	}
	if err := s.blockRepo.Store(block); err != nil {
		return nil, fmt.Errorf("failed to create block: %w", err)
	}

	s.logger.Content().Info("Hero block created", "blockId", block.ID, "variant", v.Name)
	return block, nil
}

// List returns every block, most recently changed first.
func (s *HeroService) List() ([]*hero.Block, error) {
	blocks, err := s.blockRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	return blocks, nil
}

// Get returns a block or ErrBlockNotFound.
func (s *HeroService) Get(id string) (*hero.Block, error) {
	if id == "" {
		return nil, fmt.Errorf("block ID cannot be empty")
	}
	block, err := s.blockRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get block %s: %w", id, err)
	}
	if block == nil {
		return nil, hero.ErrBlockNotFound
	}
	return block, nil
}

func (s *HeroService) GetAttributes(id string) (hero.Attributes, error) {
	block, err := s.Get(id)
	if err != nil {
		return hero.Attributes{}, err
	}
	return block.Attributes, nil
}

// SetAttributes validates patch against the block's variant, stores the merged
// snapshot, and pushes the new render to preview subscribers.
func (s *HeroService) SetAttributes(id string, patch hero.Patch) (hero.Attributes, error) {
	block, err := s.Get(id)
	if err != nil {
		return hero.Attributes{}, err
	}
	v, err := s.variants.Get(block.Variant)
	if err != nil {
		return hero.Attributes{}, err
	}
	if patch.IsEmpty() {
		return block.Attributes, nil
	}
	if err := patch.Validate(v); err != nil {
		return hero.Attributes{}, &ValidationError{Err: err}
	}

	block.Attributes = patch.Apply(block.Attributes)
	block.Changed = s.now()
	if err := s.blockRepo.Update(block); err != nil {
		return hero.Attributes{}, fmt.Errorf("failed to update block %s: %w", id, err)
	}
	generation := s.fragments.InvalidateFragments(id)

	s.logger.Content().Info("Hero block attributes updated", "blockId", id)
	s.publishPreview(block, v, generation)
	return block.Attributes, nil
}

// SelectMedia stores the upload and points the block at it.
func (s *HeroService) SelectMedia(id string, upload MediaUpload) (hero.MediaSelection, error) {
	if _, err := s.Get(id); err != nil {
		return hero.MediaSelection{}, err
	}

	media, err := s.mediaService.Upload(upload)
	if err != nil {
		return hero.MediaSelection{}, err
	}

	selection := hero.MediaSelection{URL: media.URL, ID: media.ID}
	if _, err := s.SetAttributes(id, hero.MediaPatch(selection.URL, selection.ID)); err != nil {
		return hero.MediaSelection{}, err
	}
	return selection, nil
}

// ClearMedia detaches the background image. The media itself is kept.
func (s *HeroService) ClearMedia(id string) (hero.Attributes, error) {
	return s.SetAttributes(id, hero.MediaPatch("", ""))
}

// Presentation computes the presentation data of a stored block, as its markup
// is rendered.
func (s *HeroService) Presentation(id string) (hero.Presentation, error) {
	block, err := s.Get(id)
	if err != nil {
		return hero.Presentation{}, err
	}
	v, err := s.variants.Get(block.Variant)
	if err != nil {
		return hero.Presentation{}, err
	}
	return s.renderer.Presentation(v, block.Attributes), nil
}

// EditorHTML returns the editor markup of a block, from cache when possible.
func (s *HeroService) EditorHTML(id string) (string, error) {
	if html, found := s.fragments.GetFragment(id, interfaces.ModeEditor); found {
		return html, nil
	}

	generation := s.fragments.Generation(id)
	block, err := s.Get(id)
	if err != nil {
		return "", err
	}
	v, err := s.variants.Get(block.Variant)
	if err != nil {
		return "", err
	}
	html, err := s.renderer.RenderEditor(id, v, block.Attributes)
	if err != nil {
		return "", err
	}
	s.fragments.SetFragment(id, interfaces.ModeEditor, html, generation)
	return html, nil
}

// Publish renders the static markup and stores it. A block without an image
// cannot be published.
func (s *HeroService) Publish(id string) (*hero.Block, error) {
	generation := s.fragments.Generation(id)
	block, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	v, err := s.variants.Get(block.Variant)
	if err != nil {
		return nil, err
	}
	// a URL the renderer blocks counts as no image
	if len(s.renderer.Presentation(v, block.Attributes).BackgroundImageStyle) == 0 {
		return nil, hero.ErrNoImage
	}

	html, err := s.renderer.RenderStatic(v, block.Attributes)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if at.Before(block.Changed) {
		at = block.Changed
	}
	if err := s.blockRepo.MarkPublished(id, html, at); err != nil {
		return nil, fmt.Errorf("failed to publish block %s: %w", id, err)
	}
	block.PublishedHTML = &html
	block.Published = &at
	s.fragments.SetFragment(id, interfaces.ModeStatic, html, generation)

	s.logger.Content().Info("Hero block published", "blockId", id, "bytes", len(html))

	if s.notifier != nil {
		published := *block
		go func() {
			if err := s.notifier.NotifyPublished(&published); err != nil {
				s.logger.LogError(logging.ChannelContent, "notify-published", err, map[string]any{"blockId": id})
			}
		}()
	}
	return block, nil
}

// PublishedHTML returns the last published markup of a block.
func (s *HeroService) PublishedHTML(id string) (string, error) {
	if html, found := s.fragments.GetFragment(id, interfaces.ModeStatic); found {
		return html, nil
	}
	generation := s.fragments.Generation(id)
	block, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if block.PublishedHTML == nil || strings.TrimSpace(*block.PublishedHTML) == "" {
		return "", ErrNotPublished
	}
	s.fragments.SetFragment(id, interfaces.ModeStatic, *block.PublishedHTML, generation)
	return *block.PublishedHTML, nil
}

// Delete removes a block and tells its preview subscribers.
func (s *HeroService) Delete(id string) error {
	if err := s.blockRepo.Delete(id); err != nil {
		if errors.Is(err, hero.ErrBlockNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete block %s: %w", id, err)
	}
	s.fragments.InvalidateFragments(id)
	if s.preview != nil {
		s.preview.Publish(messaging.PreviewMessage{Type: messaging.MessageDeleted, BlockID: id, Changed: s.now()})
	}
	s.logger.Content().Info("Hero block deleted", "blockId", id)
	return nil
}

// publishPreview renders the block for subscribers and caches the editor markup
// under the generation its update produced.
func (s *HeroService) publishPreview(block *hero.Block, v hero.Variant, generation uint64) {
	if s.preview == nil || s.preview.SubscriberCount(block.ID) == 0 {
		return
	}
	html, err := s.renderer.RenderEditor(block.ID, v, block.Attributes)
	if err != nil {
		s.logger.Preview().Warn("Preview render failed", "blockId", block.ID, "error", err.Error())
		return
	}
	s.fragments.SetFragment(block.ID, interfaces.ModeEditor, html, generation)

	p := s.renderer.Presentation(v, block.Attributes)
	s.preview.Publish(messaging.PreviewMessage{
		Type:         messaging.MessageUpdate,
		BlockID:      block.ID,
		Variant:      v.Name,
		Presentation: &p,
		HTML:         html,
		Changed:      block.Changed,
	})
}
