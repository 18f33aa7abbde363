package runtime

import "sort"

// Focusable widgets participate in Tab navigation.
type Focusable interface {
	CanFocus() bool
}

// FocusManager owns the keyboard focus ring: the ordered list of
// focusable widgets in the active layer and at most one current focus.
// The ring is rebuilt from the tree after every layout pass; widgets
// with an explicit tab index come first in ascending order (ties kept
// in traversal order), the rest follow in traversal order.
type FocusManager struct {
	ring    []Widget
	current Widget
}

// NewFocusManager creates an empty focus manager.
func NewFocusManager() *FocusManager {
	return &FocusManager{}
}

// Rebuild rescans root for focusable widgets and reorders the ring.
// The current focus is kept if its widget is still present, otherwise
// cleared.
func (f *FocusManager) Rebuild(root Widget) {
	if f == nil {
		return
	}
	type entry struct {
		w      Widget
		tab    int
		hasTab bool
		seq    int
	}
	var entries []entry
	seq := 0
	var walk func(w Widget)
	walk = func(w Widget) {
		if w == nil {
			return
		}
		if fc, ok := w.(Focusable); ok && fc.CanFocus() {
			tab, hasTab := w.WidgetBase().TabIndex()
			entries = append(entries, entry{w: w, tab: tab, hasTab: hasTab, seq: seq})
			seq++
		}
		if container, ok := w.(Container); ok {
			for _, child := range container.Children() {
				walk(child)
			}
		}
	}
	walk(root)

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.hasTab && b.hasTab:
			if a.tab != b.tab {
				return a.tab < b.tab
			}
			return a.seq < b.seq
		case a.hasTab:
			return true
		case b.hasTab:
			return false
		default:
			return a.seq < b.seq
		}
	})

	f.ring = f.ring[:0]
	found := false
	for _, e := range entries {
		f.ring = append(f.ring, e.w)
		if e.w == f.current {
			found = true
		}
	}
	if f.current != nil && !found {
		f.clearCurrent()
	}
}

// Current returns the focused widget, or nil.
func (f *FocusManager) Current() Widget {
	if f == nil {
		return nil
	}
	return f.current
}

// SetFocus moves focus to w (which may be nil to clear), firing
// Unfocused/Focused hooks.
func (f *FocusManager) SetFocus(w Widget) {
	if f == nil || f.current == w {
		return
	}
	f.clearCurrent()
	f.current = w
	if h, ok := w.(FocusHandler); ok {
		h.Focused()
	}
}

// FocusNext advances focus to the next ring entry, wrapping at the
// end. With no current focus the first entry is focused.
func (f *FocusManager) FocusNext() { f.move(1) }

// FocusPrev moves focus to the previous ring entry, wrapping at the
// start. With no current focus the last entry is focused.
func (f *FocusManager) FocusPrev() { f.move(-1) }

func (f *FocusManager) move(step int) {
	if f == nil || len(f.ring) == 0 {
		return
	}
	idx := -1
	for i, w := range f.ring {
		if w == f.current {
			idx = i
			break
		}
	}
	if idx < 0 {
		if step > 0 {
			f.SetFocus(f.ring[0])
		} else {
			f.SetFocus(f.ring[len(f.ring)-1])
		}
		return
	}
	next := (idx + step + len(f.ring)) % len(f.ring)
	f.SetFocus(f.ring[next])
}

// Release clears focus if w currently holds it. Called when w is
// unmounted so focus never points at a dead widget.
func (f *FocusManager) Release(w Widget) {
	if f == nil || f.current != w {
		return
	}
	f.clearCurrent()
}

func (f *FocusManager) clearCurrent() {
	if f.current == nil {
		return
	}
	if h, ok := f.current.(FocusHandler); ok {
		h.Unfocused()
	}
	f.current = nil
}
