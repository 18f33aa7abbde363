// Package event defines the platform input model delivered by a Frame
// and routed by the runtime dispatcher.
package event

import "github.com/i2y/castella-go/geom"

// MouseButton identifies which pointer button changed state.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Mouse is a pointer press, release, or move.
type Mouse struct {
	Pos    geom.Point
	Button MouseButton
}

// Translate returns the event with Pos shifted into a child's local space.
func (m Mouse) Translate(origin geom.Point) Mouse {
	m.Pos = m.Pos.Sub(origin)
	return m
}

// Wheel is a scroll wheel or trackpad delta at a pointer position.
type Wheel struct {
	Pos     geom.Point
	OffsetX float64
	OffsetY float64
}

// IsHorizontal reports whether the dominant delta axis is horizontal.
func (w Wheel) IsHorizontal() bool {
	return abs(w.OffsetX) > abs(w.OffsetY)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Char is a committed text input character.
type Char struct {
	Rune rune
}

// KeyCode identifies non-character keys.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyEnter
	KeySpace
	KeyEscape
)

// KeyAction distinguishes press, auto-repeat, and release.
type KeyAction int

const (
	ActionUnknown KeyAction = iota
	ActionPress
	ActionRepeat
	ActionRelease
)

// Modifier bits for Key events.
const (
	ModShift = 1 << iota
	ModCtrl
	ModAlt
)

// Key is a keyboard event.
type Key struct {
	Code   KeyCode
	Action KeyAction
	Mods   int
}

// IsShift reports whether shift was held.
func (k Key) IsShift() bool { return k.Mods&ModShift != 0 }

// IsCtrl reports whether control was held.
func (k Key) IsCtrl() bool { return k.Mods&ModCtrl != 0 }

// IsPressed reports whether the event is a press or auto-repeat.
func (k Key) IsPressed() bool {
	return k.Action == ActionPress || k.Action == ActionRepeat
}
