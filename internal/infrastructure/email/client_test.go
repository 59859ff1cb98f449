package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/email/templates"
)

func TestBuildPublishEmail(t *testing.T) {
	assert := assert.New(t)

	req := BuildPublishEmail("Hero Blocks", "noreply@example.com", "editor@example.com", templates.PublishEmailProps{
		BlockID:     "01HB",
		Variant:     "hero",
		Heading:     "<p>Big <strong>news</strong></p>",
		ImageURL:    "https://cdn.example.com/a.webp",
		ViewURL:     "https://example.com/blocks/01HB",
		PublishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	assert.Equal("Hero Blocks <noreply@example.com>", req.From)
	assert.Equal([]string{"editor@example.com"}, req.To)
	assert.Equal("Hero block published: Big news", req.Subject)
	assert.Contains(req.Html, "Heading: Big news")
	assert.Contains(req.Html, `href="https://example.com/blocks/01HB"`)
	assert.Contains(req.Html, `src="https://cdn.example.com/a.webp"`)
	assert.NotContains(req.Html, "<strong>")
}

func TestBuildPublishEmail_RelativeImageSkipped(t *testing.T) {
	req := BuildPublishEmail("n", "f@example.com", "t@example.com", templates.PublishEmailProps{
		BlockID:  "x",
		ImageURL: "/media/hero/a.png",
	})
	assert.Equal(t, "Hero block published", req.Subject)
	assert.NotContains(t, req.Html, "<img")
	assert.NotContains(t, req.Html, "View block")
}

func TestNewService_RequiresKey(t *testing.T) {
	_, err := NewService("", "", "")
	assert.Error(t, err)

	svc, err := NewService("re_test", "", "")
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
