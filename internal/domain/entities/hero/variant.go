package hero

// Capabilities switches the optional controls of a variant on or off.
type Capabilities struct {
	AlignmentToolbar bool `json:"alignmentToolbar" yaml:"alignmentToolbar"`
	TextColor        bool `json:"textColor" yaml:"textColor"`
	TextAlign        bool `json:"textAlign" yaml:"textAlign"`

	// LegacyClassSpacing reproduces the single-space join of every class
	// segment, empty ones included, so markup saved by older editors still
	// matches byte for byte.
	LegacyClassSpacing bool `json:"legacyClassSpacing" yaml:"legacyClassSpacing"`
}

// Defaults are the attribute values a new block of a variant starts with.
type Defaults struct {
	BackgroundColor   *string      `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	BackgroundOpacity int          `json:"backgroundOpacity" yaml:"backgroundOpacity"`
	ContentWidth      ContentWidth `json:"contentWidth" yaml:"contentWidth"`
	ContentTextColor  *string      `json:"contentTextColor,omitempty" yaml:"contentTextColor,omitempty"`
}

// Variant is one registration of the hero block.
type Variant struct {
	Name         string       `json:"name" yaml:"name"`
	Title        string       `json:"title" yaml:"title"`
	BlockClass   string       `json:"blockClass" yaml:"blockClass"`
	Capabilities Capabilities `json:"capabilities" yaml:"capabilities"`
	Defaults     Defaults     `json:"defaults" yaml:"defaults"`
}

// Base class tokens of the content wrapper and the text box.
const (
	DefaultBlockClass = "wp-block-cloudblocks-hero"
	contentSuffix     = "__content"
	textSuffix        = "__text"
)

// DefaultOpacity and DefaultWidth apply when a variant leaves them unset.
const (
	DefaultOpacity = 50
	DefaultWidth   = ContentWidth(50)
)

// ContentBaseClass is the fixed token identifying the content wrapper.
func (v Variant) ContentBaseClass() string {
	return v.blockClass() + contentSuffix
}

// TextBaseClass is the fixed token identifying the text box.
func (v Variant) TextBaseClass() string {
	return v.blockClass() + textSuffix
}

func (v Variant) blockClass() string {
	if v.BlockClass == "" {
		return DefaultBlockClass
	}
	return v.BlockClass
}

// ContainerClass is the class of the outer block element.
func (v Variant) ContainerClass() string {
	return v.blockClass()
}

// NewAttributes returns the attributes of a freshly inserted block.
func (v Variant) NewAttributes() Attributes {
	d := v.Defaults
	attrs := Attributes{
		BackgroundColor:   normalize(d.BackgroundColor),
		BackgroundOpacity: d.BackgroundOpacity,
		ContentWidth:      d.ContentWidth,
	}
	if v.Capabilities.TextColor {
		attrs.ContentTextColor = normalize(d.ContentTextColor)
	}
	return attrs
}

// Normalized returns v with fallbacks applied to any unset default.
// Opacity zero is a legitimate default and is left untouched.
func (v Variant) Normalized() Variant {
	if v.Defaults.ContentWidth == 0 {
		v.Defaults.ContentWidth = DefaultWidth
	}
	if v.BlockClass == "" {
		v.BlockClass = DefaultBlockClass
	}
	return v
}

// BuiltinVariants returns the two stock registrations.
func BuiltinVariants() []Variant {
	return []Variant{
		{
			Name:       "hero",
			Title:      "Hero",
			BlockClass: DefaultBlockClass,
			Capabilities: Capabilities{
				AlignmentToolbar: true,
				TextColor:        true,
				TextAlign:        true,
			},
			Defaults: Defaults{
				BackgroundOpacity: DefaultOpacity,
				ContentWidth:      DefaultWidth,
			},
		},
		{
			Name:       "hero-classic",
			Title:      "Hero (classic)",
			BlockClass: DefaultBlockClass,
			Defaults: Defaults{
				BackgroundColor:   StringPtr("#000000"),
				BackgroundOpacity: DefaultOpacity,
				ContentWidth:      DefaultWidth,
			},
		},
	}
}
