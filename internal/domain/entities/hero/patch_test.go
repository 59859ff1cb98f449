package hero

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func intPtr(i int) *int { return &i }

func widthPtr(w ContentWidth) *ContentWidth { return &w }

func TestPatch_ApplyClearsWithEmptyString(t *testing.T) {
	assert := assert.New(t)

	attrs := Attributes{
		URL:              StringPtr("a.png"),
		MediaID:          StringPtr("01HXYZ"),
		ContentClassName: StringPtr("x"),
		ContentWidth:     50,
	}
	out := MediaPatch("", "").Apply(attrs)

	assert.Nil(out.URL)
	assert.Nil(out.MediaID)
	assert.Equal("x", *out.ContentClassName)
	// the snapshot is untouched
	assert.Equal("a.png", *attrs.URL)
}

func TestPatch_ApplyLeavesNilFieldsAlone(t *testing.T) {
	attrs := fullVariant().NewAttributes()
	attrs.Text = "keep"

	out := Patch{BackgroundOpacity: intPtr(80)}.Apply(attrs)
	assert.Equal(t, 80, out.BackgroundOpacity)
	assert.Equal(t, "keep", out.Text)
	assert.Equal(t, DefaultWidth, out.ContentWidth)
}

func TestPatch_ValidateAggregatesErrors(t *testing.T) {
	p := Patch{
		BackgroundOpacity:       intPtr(42),
		ContentWidth:            widthPtr(40),
		BackgroundColor:         StringPtr("red"),
		ContentVerticalPosition: StringPtr("middle"),
	}
	err := p.Validate(fullVariant())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestPatch_ValidateRespectsCapabilities(t *testing.T) {
	p := Patch{
		ContentTextAlign: StringPtr("left"),
		ContentTextColor: StringPtr("#FFFFFF"),
	}
	assert.NoError(t, p.Validate(fullVariant()))

	err := p.Validate(classicVariant())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestPatch_ValidateAllowsClearing(t *testing.T) {
	p := Patch{
		BackgroundColor:           StringPtr(""),
		ContentHorizontalPosition: StringPtr(""),
		ContentTextColor:          StringPtr(""),
	}
	assert.NoError(t, p.Validate(classicVariant()))
}

func TestMediaPatch(t *testing.T) {
	p := MediaPatch("http://x/y.png", "01H")
	out := p.Apply(Attributes{})
	assert.True(t, HasImage(out))
	assert.Equal(t, "01H", *out.MediaID)
}

func TestContentWidth_JSON(t *testing.T) {
	assert := assert.New(t)

	var attrs Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"contentWidth":"33","backgroundOpacity":20}`), &attrs))
	assert.Equal(ContentWidth(33), attrs.ContentWidth)

	require.NoError(t, json.Unmarshal([]byte(`{"contentWidth":100}`), &attrs))
	assert.True(attrs.ContentWidth.IsFull())

	out, err := json.Marshal(ContentWidth(25))
	require.NoError(t, err)
	assert.Equal(`"25"`, string(out))

	assert.Error(json.Unmarshal([]byte(`{"contentWidth":"wide"}`), &attrs))
}

func TestVariant_NewAttributes(t *testing.T) {
	assert := assert.New(t)

	full := fullVariant().NewAttributes()
	assert.Nil(full.BackgroundColor)
	assert.Equal(DefaultOpacity, full.BackgroundOpacity)
	assert.Equal(DefaultWidth, full.ContentWidth)

	classic := classicVariant().NewAttributes()
	if assert.NotNil(classic.BackgroundColor) {
		assert.Equal("#000000", *classic.BackgroundColor)
	}
	assert.False(HasImage(classic))
}

func TestVariant_NormalizedFillsBlanks(t *testing.T) {
	v := Variant{Name: "bare"}.Normalized()
	assert.Equal(t, DefaultWidth, v.Defaults.ContentWidth)
	assert.Equal(t, "wp-block-cloudblocks-hero__content", v.ContentBaseClass())
	assert.Equal(t, 0, v.Defaults.BackgroundOpacity)
}
