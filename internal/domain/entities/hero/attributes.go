// Package hero provides the domain entities of the hero block: its persisted
// attributes, the variants it can be registered as, and the pure mapping from
// attributes to presentation data shared by the editor and published renders.
package hero

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Horizontal and vertical content positions.
const (
	PositionLeft   = "left"
	PositionCenter = "center"
	PositionRight  = "right"
	PositionTop    = "top"
	PositionBottom = "bottom"
)

// FullWidth is the content width at which horizontal positioning no longer applies.
const FullWidth = 100

// ContentWidth is the content column width in percent. Hosts persist it either as
// a number or as a numeric string, so both decode.
type ContentWidth int

// AllowedWidths lists the widths the inspector offers, widest first.
var AllowedWidths = []ContentWidth{100, 50, 33, 25}

func (w ContentWidth) String() string {
	return strconv.Itoa(int(w))
}

// IsFull reports whether the content spans the whole block.
func (w ContentWidth) IsFull() bool {
	return w == FullWidth
}

// Valid reports whether w is one of the allowed widths.
func (w ContentWidth) Valid() bool {
	for _, allowed := range AllowedWidths {
		if w == allowed {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the width as a numeric string, the form hosts store.
func (w ContentWidth) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

// UnmarshalJSON accepts 50, "50" and 50.0.
func (w *ContentWidth) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid content width %q: %w", raw, err)
	}
	*w = ContentWidth(int(f))
	return nil
}

// Attributes is a snapshot of one hero block's persisted configuration.
// Optional fields are nil when absent; an empty string is treated as absent.
type Attributes struct {
	URL                       *string      `json:"url,omitempty"`
	MediaID                   *string      `json:"id,omitempty"`
	Text                      string       `json:"text"`
	BackgroundColor           *string      `json:"backgroundColor,omitempty"`
	BackgroundOpacity         int          `json:"backgroundOpacity"`
	ContentClassName          *string      `json:"contentClassName,omitempty"`
	ContentWidth              ContentWidth `json:"contentWidth"`
	ContentHorizontalPosition *string      `json:"contentHorizontalPosition,omitempty"`
	ContentVerticalPosition   *string      `json:"contentVerticalPosition,omitempty"`
	ContentTextAlign          *string      `json:"contentTextAlign,omitempty"`
	ContentTextColor          *string      `json:"contentTextColor,omitempty"`
}

// HasImage reports whether a background image is set. When it is not, the
// media placeholder is shown instead of the mapped presentation.
func HasImage(attrs Attributes) bool {
	return present(attrs.URL)
}

// Clone returns a deep copy so callers can mutate without touching the snapshot.
func (a Attributes) Clone() Attributes {
	out := a
	out.URL = cloneString(a.URL)
	out.MediaID = cloneString(a.MediaID)
	out.BackgroundColor = cloneString(a.BackgroundColor)
	out.ContentClassName = cloneString(a.ContentClassName)
	out.ContentHorizontalPosition = cloneString(a.ContentHorizontalPosition)
	out.ContentVerticalPosition = cloneString(a.ContentVerticalPosition)
	out.ContentTextAlign = cloneString(a.ContentTextAlign)
	out.ContentTextColor = cloneString(a.ContentTextColor)
	return out
}

// StringPtr is a convenience for building optional attributes.
func StringPtr(s string) *string {
	return &s
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// normalize turns empty optional strings into nil.
func normalize(s *string) *string {
	if !present(s) {
		return nil
	}
	return cloneString(s)
}
