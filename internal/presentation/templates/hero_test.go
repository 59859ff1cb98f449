package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

func fullVariant() hero.Variant    { return hero.BuiltinVariants()[0] }
func classicVariant() hero.Variant { return hero.BuiltinVariants()[1] }

func sampleAttributes() hero.Attributes {
	return hero.Attributes{
		URL:                       hero.StringPtr("http://example.com/a.png"),
		Text:                      "<p>Hi</p>",
		BackgroundColor:           hero.StringPtr("#112233"),
		BackgroundOpacity:         20,
		ContentWidth:              50,
		ContentHorizontalPosition: hero.StringPtr("right"),
		ContentVerticalPosition:   hero.StringPtr("top"),
	}
}

func TestRenderStatic_Markup(t *testing.T) {
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())

	out, err := r.RenderStatic(fullVariant(), sampleAttributes())
	require.NoError(t, err)

	want := `<div class="wp-block-cloudblocks-hero" style="background-image:url(http://example.com/a.png)">` +
		`<div class="wp-block-cloudblocks-hero__content h-alignright v-aligntop"><div style="flex-basis:50%">` +
		`<div class="wp-block-cloudblocks-hero__text" style="background-color:#11223333">` +
		`<h1><p>Hi</p></h1></div></div></div></div>`
	assert.Equal(t, want, out)
}

func TestRenderStatic_OmitsEmptyHeadingAndStyles(t *testing.T) {
	assert := assert.New(t)
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())

	out, err := r.RenderStatic(fullVariant(), hero.Attributes{ContentWidth: 100})
	require.NoError(t, err)

	assert.NotContains(out, "<h1")
	assert.NotContains(out, "background-image")
	assert.NotContains(out, "background-color")
	assert.Contains(out, `style="flex-basis:100%"`)
}

func TestRenderStatic_TextColorFollowsVariant(t *testing.T) {
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())
	attrs := sampleAttributes()
	attrs.ContentTextColor = hero.StringPtr("#FFFFFF")

	full, err := r.RenderStatic(fullVariant(), attrs)
	require.NoError(t, err)
	assert.Contains(t, full, `<h1 style="color:#FFFFFF">`)

	classic, err := r.RenderStatic(classicVariant(), attrs)
	require.NoError(t, err)
	assert.Contains(t, classic, `<h1><p>Hi</p></h1>`)
}

func TestRenderStatic_BlocksUnsafeURL(t *testing.T) {
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())
	attrs := sampleAttributes()
	attrs.URL = hero.StringPtr("javascript:alert(1)")

	out, err := r.RenderStatic(fullVariant(), attrs)
	require.NoError(t, err)
	assert.NotContains(t, out, "javascript")
	assert.NotContains(t, out, "background-image")
}

func TestRenderStatic_LegacySpacingSurvivesMinifier(t *testing.T) {
	v := fullVariant()
	v.Capabilities.LegacyClassSpacing = true
	r := NewHeroRenderer(NewMinifier(), logging.NewDiscardLogger())

	out, err := r.RenderStatic(v, hero.Attributes{ContentWidth: 50, ContentVerticalPosition: hero.StringPtr("top")})
	require.NoError(t, err)
	assert.Contains(t, out, `class="wp-block-cloudblocks-hero__content   v-aligntop"`)
}

func TestRenderEditor_WithImage(t *testing.T) {
	assert := assert.New(t)
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())

	attrs := sampleAttributes()
	attrs.Text = ""
	out, err := r.RenderEditor("01HBLOCK", fullVariant(), attrs)
	require.NoError(t, err)

	assert.Contains(out, `data-block-id="01HBLOCK"`)
	assert.Contains(out, `data-url="http://example.com/a.png"`)
	assert.Contains(out, `data-placeholder="Write content"`)
	assert.Contains(out, `contenteditable="true"`)
}

func TestRenderEditor_PlaceholderWithoutImage(t *testing.T) {
	assert := assert.New(t)
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())

	out, err := r.RenderEditor("b", classicVariant(), classicVariant().NewAttributes())
	require.NoError(t, err)

	assert.Contains(out, "components-placeholder")
	assert.Contains(out, ">Hero<")
	assert.Contains(out, hero.PlaceholderInstructions)
	assert.Contains(out, `accept="image/*"`)
	assert.NotContains(out, "<h1")
}

func TestMinifier_CompactsMarkup(t *testing.T) {
	r := NewHeroRenderer(NewMinifier(), logging.NewDiscardLogger())
	plain := NewHeroRenderer(nil, logging.NewDiscardLogger())

	attrs := sampleAttributes()
	attrs.Text = "<p>  Hello   there  </p>"

	minified, err := r.RenderStatic(fullVariant(), attrs)
	require.NoError(t, err)
	original, err := plain.RenderStatic(fullVariant(), attrs)
	require.NoError(t, err)

	assert.Less(t, len(minified), len(original))
	assert.True(t, strings.HasPrefix(minified, "<div"))
}

func TestMinifier_KeepsMappedStyles(t *testing.T) {
	assert := assert.New(t)
	r := NewHeroRenderer(NewMinifier(), logging.NewDiscardLogger())

	attrs := sampleAttributes()
	attrs.BackgroundColor = hero.StringPtr("#FF0000")
	attrs.BackgroundOpacity = 50
	attrs.ContentTextColor = hero.StringPtr("#FFFFFF")

	static, err := r.RenderStatic(fullVariant(), attrs)
	require.NoError(t, err)
	editor, err := r.RenderEditor("01HBLOCK", fullVariant(), attrs)
	require.NoError(t, err)

	for _, style := range []string{
		`style="background-color:#FF000080"`,
		`style="color:#FFFFFF"`,
		`style="flex-basis:50%"`,
	} {
		assert.Contains(static, style)
		assert.Contains(editor, style)
	}
}

func TestRenderEditor_DataURLKeepsStoredURL(t *testing.T) {
	assert := assert.New(t)
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())

	attrs := sampleAttributes()
	attrs.URL = hero.StringPtr(`http://example.com/a (1)"b".png`)
	out, err := r.RenderEditor("01HBLOCK", fullVariant(), attrs)
	require.NoError(t, err)

	assert.Contains(out, `data-url="http://example.com/a (1)&#34;b&#34;.png"`)
	assert.Contains(out, `background-image:url(http://example.com/a%20%281%29%22b%22.png)`)
}

func TestPresentation_MatchesSanitizedMarkup(t *testing.T) {
	assert := assert.New(t)
	r := NewHeroRenderer(nil, logging.NewDiscardLogger())

	attrs := sampleAttributes()
	attrs.URL = hero.StringPtr("javascript:alert(1)")
	p := r.Presentation(fullVariant(), attrs)
	assert.Empty(p.BackgroundImageStyle)

	out, err := r.RenderStatic(fullVariant(), attrs)
	require.NoError(t, err)
	assert.NotContains(out, "background-image")

	attrs.URL = hero.StringPtr("http://x/a (b).png")
	p = r.Presentation(fullVariant(), attrs)
	assert.Equal(hero.Style{"backgroundImage": "url(http://x/a%20%28b%29.png)"}, p.BackgroundImageStyle)
}
