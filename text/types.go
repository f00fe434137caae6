package text

import (
	"image/color"
	"log/slog"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Direction specifies text direction.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
	// DirectionAuto derives the paragraph direction from the first strong
	// character. Only meaningful as a base direction.
	DirectionAuto
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionAuto:
		return "Auto"
	default:
		return unknownStr
	}
}

// IsRTL reports whether d is right-to-left.
func (d Direction) IsRTL() bool {
	return d == DirectionRTL
}

// Level is a bidi embedding level. Odd levels are right-to-left.
type Level uint8

// IsRTL reports whether the level is odd.
func (l Level) IsRTL() bool {
	return l&1 == 1
}

// Direction returns the direction of the level.
func (l Level) Direction() Direction {
	if l.IsRTL() {
		return DirectionRTL
	}
	return DirectionLTR
}

// BidiRun is a half-open span [Start, End) sharing one embedding level.
type BidiRun struct {
	Start int
	End   int
	Level Level
}

// Len returns the number of characters in the run.
func (r BidiRun) Len() int {
	return r.End - r.Start
}

// Style holds per-character formatting.
//
// Bold, Italic and Obfuscated change glyph geometry and therefore split runs.
// The remaining fields only affect painting.
type Style struct {
	Bold          bool
	Italic        bool
	Obfuscated    bool
	Underline     bool
	Strikethrough bool
	Color         color.RGBA
}

// ShapesLike reports whether s and o produce the same glyph geometry.
func (s Style) ShapesLike(o Style) bool {
	return s.Bold == o.Bold && s.Italic == o.Italic && s.Obfuscated == o.Obfuscated
}

// Font is a resolved shaping font. A nil Font selects legacy rendering.
//
// Fonts are compared with ==, so implementations must be comparable;
// pointer types are the usual choice.
type Font interface {
	// Name returns a human-readable font name.
	Name() string

	// Scale converts shaping units into layout pixels.
	Scale() float64
}

// DirectionSetting selects which glyph edge OffsetAtIndex reports.
type DirectionSetting uint8

const (
	// DirectionSettingAuto reports the leading edge of the run's own direction.
	DirectionSettingAuto DirectionSetting = iota
	// DirectionSettingInvert reports the trailing edge.
	DirectionSettingInvert
	// DirectionSettingForceLTR always reports the left edge.
	DirectionSettingForceLTR
	// DirectionSettingForceRTL always reports the right edge.
	DirectionSettingForceRTL
)

// String returns the string representation of the setting.
func (s DirectionSetting) String() string {
	switch s {
	case DirectionSettingAuto:
		return "Auto"
	case DirectionSettingInvert:
		return "Invert"
	case DirectionSettingForceLTR:
		return "ForceLTR"
	case DirectionSettingForceRTL:
		return "ForceRTL"
	default:
		return unknownStr
	}
}

// rightEdge reports whether the setting selects the right edge of a glyph
// belonging to a run with the given direction.
func (s DirectionSetting) rightEdge(rtl bool) bool {
	switch s {
	case DirectionSettingInvert:
		return !rtl
	case DirectionSettingForceLTR:
		return false
	case DirectionSettingForceRTL:
		return true
	default:
		return rtl
	}
}

// discardLogger is used by components that were given no logger.
var discardLogger = slog.New(slog.DiscardHandler)
