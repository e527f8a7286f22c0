package field

import (
	"fmt"
	"strings"
)

// Sub-page positions of a double-page spread.
const (
	SubPageLeft  = 0
	SubPageRight = 1
)

// Area is a field's placement on the canvas. X, Y, W, H are points; Rotation
// is clockwise degrees about the unrotated top-left corner.
//
// Page, SubPage and ZIndex are owned by the authoritative document: they are
// never persisted through Save, and ZIndex changes only through ReArrange.
type Area struct {
	X        float64
	Y        float64
	W        float64
	H        float64
	Rotation float64
	Page     int
	SubPage  int
	ZIndex   int
	Hidden   bool
}

// TagDelimiter separates tags in the host's flat string encoding. Tag values
// must never contain it.
const TagDelimiter = "|"

// Info carries a field's descriptive metadata. Name is not unique. Sequence
// is assigned monotonically per creation and is used for cross-layout auto
// mapping; it is independent of z-order.
type Info struct {
	Name       string
	Tags       []string
	Sequence   int
	CustomData string
}

// ValidateTags rejects tag values containing the delimiter character.
func ValidateTags(tags []string) error {
	for _, tag := range tags {
		if strings.Contains(tag, TagDelimiter) {
			return fmt.Errorf("tag %q contains %q: %w", tag, TagDelimiter, ErrInvalidArgument)
		}
	}
	return nil
}

// Issues holds the per-field issue flags. HasPositionIssues is derived: it is
// recomputed on every geometry change and ignored by Save. CustomIssues is
// script-set and never auto-cleared.
type Issues struct {
	IgnoreIssues      bool
	HasPositionIssues bool
	CustomIssues      bool
}

// MovementMode constrains how a field may be translated.
type MovementMode int

const (
	MoveFree MovementMode = iota
	MoveFixed
	MoveHorizontal
	MoveVertical
)

func (m MovementMode) String() string {
	switch m {
	case MoveFree:
		return "free"
	case MoveFixed:
		return "fixed"
	case MoveHorizontal:
		return "horizontal"
	case MoveVertical:
		return "vertical"
	default:
		return fmt.Sprintf("movementmode(%d)", int(m))
	}
}

// Restrictions gate which mutations the editor and scripts may apply to a
// field. ShowNoPrintInPreview is only meaningful while DoNotPrint is set.
type Restrictions struct {
	AllowPopupOpen       bool
	DoNotPrint           bool
	ShowNoPrintInPreview bool
	AllowRotation        bool
	AllowArrange         bool
	AllowDeletion        bool
	AllowResizing        bool
	AllowSelection       bool
	IncludeInLayout      bool
	IncludeInInitialZoom bool
	Movement             MovementMode
}

// DefaultRestrictions returns the permissive defaults a freshly created field
// carries.
func DefaultRestrictions() Restrictions {
	return Restrictions{
		AllowPopupOpen:       true,
		AllowRotation:        true,
		AllowArrange:         true,
		AllowDeletion:        true,
		AllowResizing:        true,
		AllowSelection:       true,
		IncludeInLayout:      true,
		IncludeInInitialZoom: true,
		Movement:             MoveFree,
	}
}

// UIOptions are presentation toggles consumed by the property-panel
// collaborator. The core persists them but never interprets them.
type UIOptions struct {
	HideBorder                bool
	HideShadow                bool
	ShowBackgroundColorOption bool
	SnapToObject              bool
	HelpText                  string
}

// BorderStyle enumerates the stroke styles of a field border.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSolid
	BorderOutline
	BorderDistance
)

func (s BorderStyle) String() string {
	switch s {
	case BorderNone:
		return "none"
	case BorderSolid:
		return "solid"
	case BorderOutline:
		return "outline"
	case BorderDistance:
		return "distance"
	default:
		return fmt.Sprintf("borderstyle(%d)", int(s))
	}
}

// Border describes a field's stroke and background fill. Opacities are in
// [0, 1]. Nil for path fields.
type Border struct {
	Style             BorderStyle
	Color             string
	Opacity           float64
	Width             float64
	Radius            float64
	BackgroundColor   string
	BackgroundOpacity float64
}

// Validate checks the border's value ranges.
func (b *Border) Validate() error {
	if b == nil {
		return nil
	}
	if b.Opacity < 0 || b.Opacity > 1 {
		return fmt.Errorf("border opacity %v outside [0,1]: %w", b.Opacity, ErrInvalidArgument)
	}
	if b.BackgroundOpacity < 0 || b.BackgroundOpacity > 1 {
		return fmt.Errorf("background opacity %v outside [0,1]: %w", b.BackgroundOpacity, ErrInvalidArgument)
	}
	return nil
}

// Shadow describes a field's drop shadow. Transparency is in [0, 1], Blur in
// [0, 10]. Nil for path fields.
type Shadow struct {
	Color        string
	Transparency float64
	Blur         float64
	OffsetX      float64
	OffsetY      float64
}

// Validate checks the shadow's value ranges.
func (s *Shadow) Validate() error {
	if s == nil {
		return nil
	}
	if s.Transparency < 0 || s.Transparency > 1 {
		return fmt.Errorf("shadow transparency %v outside [0,1]: %w", s.Transparency, ErrInvalidArgument)
	}
	if s.Blur < 0 || s.Blur > 10 {
		return fmt.Errorf("shadow blur %v outside [0,10]: %w", s.Blur, ErrInvalidArgument)
	}
	return nil
}

// SaveOptions tune a single reconciliation call. AddUndo asks the host to
// record an undo checkpoint; HandleTextFlow runs downstream text-reflow
// synchronously before Save returns (a no-op for non-text fields).
type SaveOptions struct {
	AddUndo        bool
	HandleTextFlow bool
}

// DefaultSaveOptions is what a plain Save uses.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{AddUndo: true, HandleTextFlow: true}
}
