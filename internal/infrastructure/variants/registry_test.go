package variants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
)

func TestLoad_EmbeddedMatchesBuiltins(t *testing.T) {
	r, err := Load("", logging.NewDiscardLogger())
	require.NoError(t, err)

	assert.Equal(t, []string{"hero", "hero-classic"}, r.Names())
	for _, want := range hero.BuiltinVariants() {
		got, err := r.Get(want.Name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "hero", r.DefaultVariant().Name)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "variants.yaml")
	doc := `
variants:
  - name: banner
    title: Banner
    capabilities:
      textAlign: true
      legacyClassSpacing: true
    defaults:
      backgroundOpacity: 30
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	r, err := Load(path, nil)
	require.NoError(t, err)

	v, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "banner", v.Name)
	assert.True(t, v.Capabilities.LegacyClassSpacing)
	assert.Equal(t, hero.DefaultWidth, v.Defaults.ContentWidth)
	assert.Equal(t, hero.DefaultBlockClass, v.BlockClass)
}

func TestNewRegistry_RejectsBadDefinitions(t *testing.T) {
	_, err := NewRegistry([]hero.Variant{
		{Name: ""},
		{Name: "a"},
		{Name: "a"},
		{Name: "b", Defaults: hero.Defaults{BackgroundOpacity: 33, ContentWidth: 40}},
	})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestRegistry_UnknownVariant(t *testing.T) {
	_, err := Default().Get("missing")
	assert.ErrorIs(t, err, hero.ErrUnknownVariant)

	_, err = Default().Mapper("missing")
	assert.ErrorIs(t, err, hero.ErrUnknownVariant)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte("variants: []"))
	assert.Error(t, err)
}
