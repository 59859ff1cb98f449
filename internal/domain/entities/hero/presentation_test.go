package hero

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullVariant() Variant {
	return BuiltinVariants()[0]
}

func classicVariant() Variant {
	return BuiltinVariants()[1]
}

func TestAlphaHex_AllOpacitySteps(t *testing.T) {
	assert := assert.New(t)

	for opacity := 0; opacity <= 100; opacity += 5 {
		want := (opacity*255 + 50) / 100
		assert.Equal(want, Alpha(opacity), "opacity %d", opacity)
		assert.Equal(fmt.Sprintf("%02X", want), AlphaHex(opacity), "opacity %d", opacity)
	}
}

func TestAlphaHex_KnownValues(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(128, Alpha(50))
	assert.Equal("80", AlphaHex(50))
	assert.Equal("00", AlphaHex(0))
	assert.Equal("FF", AlphaHex(100))
	assert.Equal("33", AlphaHex(20))
	assert.Equal("0D", AlphaHex(5))
}

func TestAlpha_ClampsOutOfRange(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, Alpha(-20))
	assert.Equal(255, Alpha(140))
	assert.Equal("1A", AlphaHex(10))
}

func TestResolveColor(t *testing.T) {
	assert := assert.New(t)

	got := ResolveColor(StringPtr("#FF0000"), 50)
	if assert.NotNil(got) {
		assert.Equal("#FF000080", *got)
	}
	assert.Nil(ResolveColor(nil, 50))
	assert.Nil(ResolveColor(StringPtr(""), 50))
}

func TestCompute_FullWidthDropsHorizontalAlign(t *testing.T) {
	assert := assert.New(t)
	m := NewMapper(fullVariant())

	for _, pos := range []string{PositionLeft, PositionCenter, PositionRight} {
		p := m.Compute(Attributes{
			ContentWidth:              100,
			ContentHorizontalPosition: StringPtr(pos),
		})
		assert.NotContains(p.LayoutClass, "h-align", "position %s", pos)
	}

	p := m.Compute(Attributes{ContentWidth: 50, ContentHorizontalPosition: StringPtr("left")})
	assert.Contains(strings.Fields(p.LayoutClass), "h-alignleft")
}

func TestCompute_EndToEnd(t *testing.T) {
	assert := assert.New(t)
	m := NewMapper(fullVariant())

	attrs := Attributes{
		URL:                       StringPtr("a.png"),
		Text:                      "<p>Hi</p>",
		BackgroundColor:           StringPtr("#112233"),
		BackgroundOpacity:         20,
		ContentWidth:              50,
		ContentHorizontalPosition: StringPtr("right"),
		ContentVerticalPosition:   StringPtr("top"),
	}
	p := m.Compute(attrs)

	assert.Equal("wp-block-cloudblocks-hero__content h-alignright v-aligntop", p.LayoutClass)
	assert.Equal("wp-block-cloudblocks-hero__text", p.TextClass)
	assert.Equal(Style{"flexBasis": "50%"}, p.FlexBasisStyle)
	assert.Equal(Style{"backgroundImage": "url(a.png)"}, p.BackgroundImageStyle)
	if assert.NotNil(p.ResolvedColor) {
		assert.Equal("#11223333", *p.ResolvedColor)
	}
	assert.Empty(p.TextColorStyle)
}

func TestCompute_NoUndefinedFragments(t *testing.T) {
	assert := assert.New(t)

	for _, v := range []Variant{fullVariant(), classicVariant()} {
		for _, legacy := range []bool{false, true} {
			v.Capabilities.LegacyClassSpacing = legacy
			p := NewMapper(v).Compute(Attributes{ContentWidth: 33})
			for _, class := range []string{p.LayoutClass, p.TextClass} {
				assert.NotContains(class, "undefined")
				assert.NotContains(class, "null")
				assert.NotContains(class, "<nil>")
			}
		}
	}
}

func TestCompute_ClassNameAndTextAlign(t *testing.T) {
	assert := assert.New(t)

	attrs := Attributes{
		ContentWidth:            25,
		ContentClassName:        StringPtr("is-dark"),
		ContentVerticalPosition: StringPtr("bottom"),
		ContentTextAlign:        StringPtr("center"),
		ContentTextColor:        StringPtr("#FFFFFF"),
	}

	full := NewMapper(fullVariant()).Compute(attrs)
	assert.Equal("wp-block-cloudblocks-hero__content is-dark v-alignbottom", full.LayoutClass)
	assert.Equal("wp-block-cloudblocks-hero__text has-center-align", full.TextClass)
	assert.Equal(Style{"color": "#FFFFFF"}, full.TextColorStyle)

	classic := NewMapper(classicVariant()).Compute(attrs)
	assert.Equal("wp-block-cloudblocks-hero__text", classic.TextClass)
	assert.Empty(classic.TextColorStyle)
}

func TestCompute_LegacySpacingMatchesSerializedMarkup(t *testing.T) {
	assert := assert.New(t)

	v := fullVariant()
	v.Capabilities.LegacyClassSpacing = true
	m := NewMapper(v)

	p := m.Compute(Attributes{
		ContentWidth:              50,
		ContentHorizontalPosition: StringPtr("right"),
		ContentVerticalPosition:   StringPtr("top"),
		ContentTextAlign:          StringPtr("left"),
	})
	assert.Equal("wp-block-cloudblocks-hero__content  h-alignright v-aligntop", p.LayoutClass)
	assert.Equal("wp-block-cloudblocks-hero__text  has-left-align", p.TextClass)

	bare := m.Compute(Attributes{ContentWidth: 100})
	assert.Equal("wp-block-cloudblocks-hero__content   ", bare.LayoutClass)
	assert.Equal("wp-block-cloudblocks-hero__text ", bare.TextClass)
	assert.Equal([]string{"wp-block-cloudblocks-hero__content"}, strings.Fields(bare.LayoutClass))
}

func TestCompute_EmptyURLHasNoBackgroundImage(t *testing.T) {
	p := NewMapper(fullVariant()).Compute(Attributes{URL: StringPtr(""), ContentWidth: 50})
	assert.Empty(t, p.BackgroundImageStyle)
	assert.Equal(t, "", p.BackgroundImageStyle.CSS())
}

func TestCompute_Idempotent(t *testing.T) {
	m := NewMapper(fullVariant())
	attrs := Attributes{
		URL:               StringPtr("http://x/y.png"),
		BackgroundColor:   StringPtr("#00FF00"),
		BackgroundOpacity: 75,
		ContentWidth:      33,
		ContentTextColor:  StringPtr("#101010"),
	}

	first := m.Compute(attrs)
	second := m.Compute(attrs)
	assert.Equal(t, first, second)
}

func TestHasImage(t *testing.T) {
	assert := assert.New(t)

	assert.False(HasImage(Attributes{URL: StringPtr("")}))
	assert.True(HasImage(Attributes{URL: StringPtr("http://x/y.png")}))
	assert.False(HasImage(Attributes{}))
}

func TestStyle_CSS(t *testing.T) {
	assert := assert.New(t)

	s := Style{"flexBasis": "50%", "backgroundImage": "url(a.png)"}
	assert.Equal("background-image:url(a.png);flex-basis:50%", s.CSS())
	assert.Equal("", Style{}.CSS())
}

func TestComputePresentation_UsesFullVariant(t *testing.T) {
	p := ComputePresentation(Attributes{ContentWidth: 50, ContentTextAlign: StringPtr("right")})
	assert.Equal(t, "wp-block-cloudblocks-hero__text has-right-align", p.TextClass)
}

func TestCompute_UnsetWidthUsesVariantDefault(t *testing.T) {
	assert := assert.New(t)

	p := ComputePresentation(Attributes{ContentHorizontalPosition: StringPtr("left")})
	assert.Equal(Style{"flexBasis": "50%"}, p.FlexBasisStyle)
	assert.Equal("wp-block-cloudblocks-hero__content h-alignleft", p.LayoutClass)

	v := fullVariant()
	v.Defaults.ContentWidth = 100
	p = NewMapper(v).Compute(Attributes{ContentHorizontalPosition: StringPtr("left")})
	assert.Equal(Style{"flexBasis": "100%"}, p.FlexBasisStyle)
	assert.Equal("wp-block-cloudblocks-hero__content", p.LayoutClass)
}
