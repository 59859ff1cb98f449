package hero

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Style is an inline style object keyed by camelCase CSS property, the way the
// editor's element tree expresses it.
type Style map[string]string

// CSS serialises the style as a declaration list with kebab-case properties,
// sorted for stable output. An empty style serialises to "".
func (s Style) CSS() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	decls := make([]string, 0, len(keys))
	for _, k := range keys {
		decls = append(decls, kebab(k)+":"+s[k])
	}
	return strings.Join(decls, ";")
}

func kebab(prop string) string {
	var b strings.Builder
	for _, r := range prop {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Presentation is everything both render paths need, derived from one
// attribute snapshot.
type Presentation struct {
	LayoutClass          string  `json:"layoutClass"`
	TextClass            string  `json:"textClass"`
	BackgroundImageStyle Style   `json:"backgroundImageStyle"`
	FlexBasisStyle       Style   `json:"flexBasisStyle"`
	ResolvedColor        *string `json:"resolvedColor,omitempty"`
	TextColorStyle       Style   `json:"textColorStyle"`
}

// OverlayStyle is the inline style of the text box.
func (p Presentation) OverlayStyle() Style {
	if p.ResolvedColor == nil {
		return Style{}
	}
	return Style{"backgroundColor": *p.ResolvedColor}
}

// Mapper derives presentations for one variant. The zero value maps with no
// optional capabilities and the default block class.
type Mapper struct {
	variant Variant
}

// NewMapper returns a mapper bound to variant v.
func NewMapper(v Variant) Mapper {
	return Mapper{variant: v.Normalized()}
}

// Variant returns the variant the mapper was built for.
func (m Mapper) Variant() Variant {
	return m.variant.Normalized()
}

// Compute maps attrs to their presentation. It never fails and keeps no state.
// An unset width falls back to the variant's default.
func (m Mapper) Compute(attrs Attributes) Presentation {
	v := m.variant.Normalized()
	if attrs.ContentWidth == 0 {
		attrs.ContentWidth = v.Defaults.ContentWidth
	}

	p := Presentation{
		LayoutClass:          m.layoutClass(v, attrs),
		TextClass:            m.textClass(v, attrs),
		BackgroundImageStyle: Style{},
		FlexBasisStyle:       Style{"flexBasis": attrs.ContentWidth.String() + "%"},
		ResolvedColor:        ResolveColor(attrs.BackgroundColor, attrs.BackgroundOpacity),
		TextColorStyle:       Style{},
	}

	if present(attrs.URL) {
		p.BackgroundImageStyle["backgroundImage"] = "url(" + *attrs.URL + ")"
	}
	if v.Capabilities.TextColor && present(attrs.ContentTextColor) {
		p.TextColorStyle["color"] = *attrs.ContentTextColor
	}
	return p
}

func (m Mapper) layoutClass(v Variant, attrs Attributes) string {
	hAlign := ""
	if !attrs.ContentWidth.IsFull() && present(attrs.ContentHorizontalPosition) {
		hAlign = "h-align" + *attrs.ContentHorizontalPosition
	}
	vAlign := ""
	if present(attrs.ContentVerticalPosition) {
		vAlign = "v-align" + *attrs.ContentVerticalPosition
	}
	return joinClasses(v.Capabilities.LegacyClassSpacing,
		v.ContentBaseClass(), value(attrs.ContentClassName), hAlign, vAlign)
}

func (m Mapper) textClass(v Variant, attrs Attributes) string {
	if !v.Capabilities.TextAlign {
		return v.TextBaseClass()
	}
	if v.Capabilities.LegacyClassSpacing {
		align := ""
		if present(attrs.ContentTextAlign) {
			align = " has-" + *attrs.ContentTextAlign + "-align"
		}
		return v.TextBaseClass() + " " + align
	}
	if !present(attrs.ContentTextAlign) {
		return v.TextBaseClass()
	}
	return v.TextBaseClass() + " has-" + *attrs.ContentTextAlign + "-align"
}

// joinClasses joins class segments with single spaces. In legacy mode empty
// segments are kept, so the result matches markup serialised by older editors.
func joinClasses(legacy bool, segments ...string) string {
	if legacy {
		return strings.Join(segments, " ")
	}
	kept := segments[:0:0]
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " ")
}

// Alpha converts an overlay opacity percentage into an 8-bit alpha channel,
// rounding halves up. Opacity is clamped to [0,100].
func Alpha(opacity int) int {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 100 {
		opacity = 100
	}
	return int(math.Floor(float64(opacity)/100*255 + 0.5))
}

// AlphaHex is the two-digit uppercase hex form of Alpha(opacity).
func AlphaHex(opacity int) string {
	return fmt.Sprintf("%02X", uint8(Alpha(opacity)))
}

// ResolveColor appends the opacity's alpha channel to a 6-digit base color.
// An absent base color stays absent.
func ResolveColor(base *string, opacity int) *string {
	if !present(base) {
		return nil
	}
	resolved := *base + AlphaHex(opacity)
	return &resolved
}

// ComputePresentation maps attrs with the full-featured stock variant.
func ComputePresentation(attrs Attributes) Presentation {
	return NewMapper(BuiltinVariants()[0]).Compute(attrs)
}
