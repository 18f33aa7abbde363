// Package scroll tracks the visible region of scrollable content.
package scroll

import "github.com/i2y/castella-go/geom"

// State holds a scroll offset clamped against the current content and
// viewport sizes. When pin-to-bottom is enabled the vertical offset
// follows content growth until the user scrolls away, which clears the
// pin.
type State struct {
	offsetX     float64
	offsetY     float64
	contentSize geom.Size
	viewSize    geom.Size
	pinToBottom bool
	pinned      bool
	onChange    func(s *State)
}

// NewState creates a scroll state anchored at the origin.
func NewState() *State {
	return &State{}
}

// PinToBottom makes the vertical offset track the end of growing
// content until the user scrolls.
func (s *State) PinToBottom() *State {
	if s == nil {
		return nil
	}
	s.pinToBottom = true
	s.pinned = true
	return s
}

// IsPinned reports whether the offset currently follows content growth.
func (s *State) IsPinned() bool {
	if s == nil {
		return false
	}
	return s.pinToBottom && s.pinned
}

// SetOnChange sets a callback invoked after the offset moves.
func (s *State) SetOnChange(fn func(s *State)) {
	if s == nil {
		return
	}
	s.onChange = fn
}

// Offset returns the current offset.
func (s *State) Offset() (x, y float64) {
	if s == nil {
		return 0, 0
	}
	return s.offsetX, s.offsetY
}

// ContentSize returns the last measured content size.
func (s *State) ContentSize() geom.Size {
	if s == nil {
		return geom.Size{}
	}
	return s.contentSize
}

// ViewSize returns the last observed viewport size.
func (s *State) ViewSize() geom.Size {
	if s == nil {
		return geom.Size{}
	}
	return s.viewSize
}

// MaxOffset returns the largest valid offset on each axis.
func (s *State) MaxOffset() (x, y float64) {
	if s == nil {
		return 0, 0
	}
	return max(0, s.contentSize.Width-s.viewSize.Width),
		max(0, s.contentSize.Height-s.viewSize.Height)
}

// Update records new content and viewport sizes, re-clamps the offset
// and, while pinned, keeps the viewport at the end of the content.
func (s *State) Update(content, view geom.Size) {
	if s == nil {
		return
	}
	s.contentSize = content
	s.viewSize = view
	if s.IsPinned() {
		_, maxY := s.MaxOffset()
		s.setOffset(s.offsetX, maxY)
		return
	}
	s.setOffset(s.offsetX, s.offsetY)
}

// ScrollTo moves to an absolute offset without affecting the pin.
func (s *State) ScrollTo(x, y float64) {
	if s == nil {
		return
	}
	s.setOffset(x, y)
}

// ScrollToEnd jumps to the bottom and, when pin-to-bottom is enabled,
// re-arms the pin.
func (s *State) ScrollToEnd() {
	if s == nil {
		return
	}
	if s.pinToBottom {
		s.pinned = true
	}
	_, maxY := s.MaxOffset()
	s.setOffset(s.offsetX, maxY)
}

// UserScrollBy applies a user-initiated delta. Scrolling away from the
// bottom clears the pin.
func (s *State) UserScrollBy(dx, dy float64) {
	if s == nil {
		return
	}
	if dy != 0 && s.pinToBottom {
		_, maxY := s.MaxOffset()
		if s.offsetY+dy < maxY {
			s.pinned = false
		} else {
			s.pinned = true
		}
	}
	s.setOffset(s.offsetX+dx, s.offsetY+dy)
}

func (s *State) setOffset(x, y float64) {
	maxX, maxY := s.MaxOffset()
	x = min(max(0, x), maxX)
	y = min(max(0, y), maxY)
	if x == s.offsetX && y == s.offsetY {
		return
	}
	s.offsetX = x
	s.offsetY = y
	if s.onChange != nil {
		s.onChange(s)
	}
}
