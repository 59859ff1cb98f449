package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/variants"
)

func TestRenderSnapshot_Static(t *testing.T) {
	var out bytes.Buffer
	err := renderSnapshot(variants.Default(), "hero",
		`{"url":"http://example.com/a.png","text":"Hi","contentWidth":"50","contentHorizontalPosition":"right"}`,
		modeStatic, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "h-alignright")
	assert.Contains(t, out.String(), "<h1>Hi</h1>")
}

func TestRenderSnapshot_PresentationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"backgroundColor":"#FF0000","backgroundOpacity":50}`), 0644))

	var out bytes.Buffer
	require.NoError(t, renderSnapshot(variants.Default(), "", "@"+path, modePresentation, &out))
	assert.Contains(t, out.String(), `"#FF000080"`)
}

func TestRenderSnapshot_PresentationDropsBlockedURL(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderSnapshot(variants.Default(), "hero", `{"url":"javascript:alert(1)"}`, modePresentation, &out))
	assert.NotContains(t, out.String(), "javascript")
	assert.Contains(t, out.String(), `"flexBasis": "50%"`)
}

func TestRenderSnapshot_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, renderSnapshot(variants.Default(), "missing", "{}", modeStatic, &out), hero.ErrUnknownVariant)
	assert.Error(t, renderSnapshot(variants.Default(), "hero", `{"backgroundOpacity":3}`, modeStatic, &out))
	assert.Error(t, renderSnapshot(variants.Default(), "hero", "{}", "pdf", &out))
	assert.Error(t, renderSnapshot(variants.Default(), "hero", "{", modeStatic, &out))
}

func TestListVariants(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listVariants(variants.Default(), "", &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "* hero "))

	out.Reset()
	require.NoError(t, listVariants(variants.Default(), "hero-classic", &out))
	assert.Contains(t, out.String(), `"variant": "hero-classic"`)
}
