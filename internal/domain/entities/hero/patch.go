package hero

import (
	"fmt"
	"regexp"

	"go.uber.org/multierr"
)

// Patch is a partial attribute update. A nil field is left untouched; a field
// pointing at the empty string clears the attribute.
type Patch struct {
	URL                       *string       `json:"url,omitempty"`
	MediaID                   *string       `json:"id,omitempty"`
	Text                      *string       `json:"text,omitempty"`
	BackgroundColor           *string       `json:"backgroundColor,omitempty"`
	BackgroundOpacity         *int          `json:"backgroundOpacity,omitempty"`
	ContentClassName          *string       `json:"contentClassName,omitempty"`
	ContentWidth              *ContentWidth `json:"contentWidth,omitempty"`
	ContentHorizontalPosition *string       `json:"contentHorizontalPosition,omitempty"`
	ContentVerticalPosition   *string       `json:"contentVerticalPosition,omitempty"`
	ContentTextAlign          *string       `json:"contentTextAlign,omitempty"`
	ContentTextColor          *string       `json:"contentTextColor,omitempty"`
}

// MediaPatch builds the patch a media selection produces. A selection without
// a URL clears both the URL and the media id.
func MediaPatch(url, id string) Patch {
	if url == "" {
		return Patch{URL: StringPtr(""), MediaID: StringPtr("")}
	}
	return Patch{URL: StringPtr(url), MediaID: StringPtr(id)}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var (
	horizontalPositions = []string{PositionLeft, PositionCenter, PositionRight}
	verticalPositions   = []string{PositionTop, PositionCenter, PositionBottom}
	textAlignments      = []string{PositionLeft, PositionCenter, PositionRight}
)

// Validate checks every field of the patch against the variant and returns all
// problems combined.
func (p Patch) Validate(v Variant) error {
	var err error

	if p.BackgroundOpacity != nil {
		o := *p.BackgroundOpacity
		if o < 0 || o > 100 {
			err = multierr.Append(err, fmt.Errorf("backgroundOpacity %d out of range [0,100]", o))
		} else if o%5 != 0 {
			err = multierr.Append(err, fmt.Errorf("backgroundOpacity %d is not a multiple of 5", o))
		}
	}
	if p.ContentWidth != nil && !p.ContentWidth.Valid() {
		err = multierr.Append(err, fmt.Errorf("contentWidth %d is not one of %v", *p.ContentWidth, AllowedWidths))
	}
	if present(p.BackgroundColor) && !hexColor.MatchString(*p.BackgroundColor) {
		err = multierr.Append(err, fmt.Errorf("backgroundColor %q is not a 6-digit hex color", *p.BackgroundColor))
	}
	err = multierr.Append(err, checkEnum("contentHorizontalPosition", p.ContentHorizontalPosition, horizontalPositions))
	err = multierr.Append(err, checkEnum("contentVerticalPosition", p.ContentVerticalPosition, verticalPositions))

	if present(p.ContentTextAlign) {
		if !v.Capabilities.TextAlign {
			err = multierr.Append(err, fmt.Errorf("variant %s does not support contentTextAlign", v.Name))
		} else {
			err = multierr.Append(err, checkEnum("contentTextAlign", p.ContentTextAlign, textAlignments))
		}
	}
	if present(p.ContentTextColor) {
		if !v.Capabilities.TextColor {
			err = multierr.Append(err, fmt.Errorf("variant %s does not support contentTextColor", v.Name))
		} else if !hexColor.MatchString(*p.ContentTextColor) {
			err = multierr.Append(err, fmt.Errorf("contentTextColor %q is not a 6-digit hex color", *p.ContentTextColor))
		}
	}
	return err
}

func checkEnum(field string, s *string, allowed []string) error {
	if !present(s) {
		return nil
	}
	for _, a := range allowed {
		if *s == a {
			return nil
		}
	}
	return fmt.Errorf("%s %q is not one of %v", field, *s, allowed)
}

// Apply returns a copy of attrs with the patch merged in. It does not validate.
func (p Patch) Apply(attrs Attributes) Attributes {
	out := attrs.Clone()

	if p.URL != nil {
		out.URL = normalize(p.URL)
	}
	if p.MediaID != nil {
		out.MediaID = normalize(p.MediaID)
	}
	if p.Text != nil {
		out.Text = *p.Text
	}
	if p.BackgroundColor != nil {
		out.BackgroundColor = normalize(p.BackgroundColor)
	}
	if p.BackgroundOpacity != nil {
		out.BackgroundOpacity = *p.BackgroundOpacity
	}
	if p.ContentClassName != nil {
		out.ContentClassName = normalize(p.ContentClassName)
	}
	if p.ContentWidth != nil {
		out.ContentWidth = *p.ContentWidth
	}
	if p.ContentHorizontalPosition != nil {
		out.ContentHorizontalPosition = normalize(p.ContentHorizontalPosition)
	}
	if p.ContentVerticalPosition != nil {
		out.ContentVerticalPosition = normalize(p.ContentVerticalPosition)
	}
	if p.ContentTextAlign != nil {
		out.ContentTextAlign = normalize(p.ContentTextAlign)
	}
	if p.ContentTextColor != nil {
		out.ContentTextColor = normalize(p.ContentTextColor)
	}
	return out
}
