package hero

// Control kinds an editor front-end knows how to draw.
const (
	ControlSelect    = "select"
	ControlText      = "text"
	ControlColor     = "color"
	ControlRange     = "range"
	ControlAlignment = "alignment"
	ControlMedia     = "media"
)

// Option is one choice of a select control.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Condition hides a control while another attribute holds a given value.
type Condition struct {
	Attribute string `json:"attribute"`
	Equals    string `json:"equals"`
}

// Control describes one inspector input bound to an attribute.
type Control struct {
	Attribute  string     `json:"attribute"`
	Kind       string     `json:"kind"`
	Label      string     `json:"label"`
	Options    []Option   `json:"options,omitempty"`
	Min        *int       `json:"min,omitempty"`
	Max        *int       `json:"max,omitempty"`
	Step       *int       `json:"step,omitempty"`
	HiddenWhen *Condition `json:"hiddenWhen,omitempty"`
}

// Panel groups controls under a title.
type Panel struct {
	Title    string    `json:"title"`
	Controls []Control `json:"controls"`
}

// Placeholder is the copy shown while the block has no image.
type Placeholder struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	Accept       string `json:"accept"`
}

// Inspector is the editor control schema of a variant.
type Inspector struct {
	Variant     string      `json:"variant"`
	Title       string      `json:"title"`
	Toolbar     []Control   `json:"toolbar"`
	Panels      []Panel     `json:"panels"`
	Placeholder Placeholder `json:"placeholder"`
	Defaults    Attributes  `json:"defaults"`
}

// Editor copy.
const (
	PlaceholderTitle        = "Hero"
	PlaceholderInstructions = "Drag an image, upload a new one or select a file from your library."
	HeadingPlaceholder      = "Write content"
)

func intRef(i int) *int { return &i }

// Inspector builds the control schema. Options a variant lacks are left out.
func (v Variant) Inspector() Inspector {
	v = v.Normalized()

	toolbar := []Control{{Attribute: "url", Kind: ControlMedia, Label: "Edit media"}}
	if v.Capabilities.AlignmentToolbar && v.Capabilities.TextAlign {
		toolbar = append([]Control{{Attribute: "contentTextAlign", Kind: ControlAlignment, Label: "Text Alignment"}}, toolbar...)
	}

	widthOptions := []Option{
		{Label: "1/1", Value: "100"},
		{Label: "1/2", Value: "50"},
		{Label: "1/3", Value: "33"},
		{Label: "1/4", Value: "25"},
	}

	content := Panel{
		Title: "Content Settings",
		Controls: []Control{
			{Attribute: "contentWidth", Kind: ControlSelect, Label: "Content Width", Options: widthOptions},
			{
				Attribute: "contentHorizontalPosition",
				Kind:      ControlSelect,
				Label:     "Content Horizontal Position",
				Options: []Option{
					{Label: "Left", Value: PositionLeft},
					{Label: "Center", Value: PositionCenter},
					{Label: "Right", Value: PositionRight},
				},
				HiddenWhen: &Condition{Attribute: "contentWidth", Equals: ContentWidth(FullWidth).String()},
			},
			{
				Attribute: "contentVerticalPosition",
				Kind:      ControlSelect,
				Label:     "Content Vertical Position",
				Options: []Option{
					{Label: "Top", Value: PositionTop},
					{Label: "Center", Value: PositionCenter},
					{Label: "Bottom", Value: PositionBottom},
				},
			},
			{Attribute: "contentClassName", Kind: ControlText, Label: "Wrapper CSS Class"},
		},
	}

	colors := Panel{
		Title:    "Color Settings",
		Controls: []Control{{Attribute: "backgroundColor", Kind: ControlColor, Label: "Overlay Color"}},
	}
	if v.Capabilities.TextColor {
		colors.Controls = append(colors.Controls, Control{Attribute: "contentTextColor", Kind: ControlColor, Label: "Text Color"})
	}
	colors.Controls = append(colors.Controls, Control{
		Attribute: "backgroundOpacity",
		Kind:      ControlRange,
		Label:     "Overlay Opacity",
		Min:       intRef(0),
		Max:       intRef(100),
		Step:      intRef(5),
	})

	return Inspector{
		Variant: v.Name,
		Title:   v.Title,
		Toolbar: toolbar,
		Panels:  []Panel{content, colors},
		Placeholder: Placeholder{
			Title:        PlaceholderTitle,
			Instructions: PlaceholderInstructions,
			Accept:       "image/*",
		},
		Defaults: v.NewAttributes(),
	}
}
