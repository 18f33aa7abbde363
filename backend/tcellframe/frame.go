package tcellframe

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
)

// redrawEvent wakes the event loop to run the paint callback.
type redrawEvent struct {
	when       time.Time
	completely bool
}

func (e *redrawEvent) When() time.Time { return e.when }

// Frame implements backend.Frame over a tcell terminal screen.
type Frame struct {
	screen  tcell.Screen
	painter *painter

	onMouseDown  func(event.Mouse)
	onMouseUp    func(event.Mouse)
	onMouseWheel func(event.Wheel)
	onCursorPos  func(event.Mouse)
	onInputChar  func(event.Char)
	onInputKey   func(event.Key)
	onRedraw     func(p backend.Painter, completely bool)

	pending    atomic.Bool
	completely atomic.Bool
	closed     atomic.Bool
	closeOnce  sync.Once

	lastButtons tcell.ButtonMask
}

// New creates and initializes a terminal frame with mouse reporting
// enabled.
func New() (*Frame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return &Frame{
		screen:  screen,
		painter: newPainter(screen),
	}, nil
}

func (f *Frame) OnMouseDown(fn func(event.Mouse))  { f.onMouseDown = fn }
func (f *Frame) OnMouseUp(fn func(event.Mouse))    { f.onMouseUp = fn }
func (f *Frame) OnMouseWheel(fn func(event.Wheel)) { f.onMouseWheel = fn }
func (f *Frame) OnCursorPos(fn func(event.Mouse))  { f.onCursorPos = fn }
func (f *Frame) OnInputChar(fn func(event.Char))   { f.onInputChar = fn }
func (f *Frame) OnInputKey(fn func(event.Key))     { f.onInputKey = fn }

func (f *Frame) OnRedraw(fn func(p backend.Painter, completely bool)) { f.onRedraw = fn }

// Painter returns the frame's cell painter.
func (f *Frame) Painter() backend.Painter { return f.painter }

// Size returns the terminal size in cells.
func (f *Frame) Size() geom.Size {
	w, h := f.screen.Size()
	return geom.Size{Width: float64(w), Height: float64(h)}
}

// PostUpdate requests a redraw from any goroutine. Requests coalesce
// until the event loop consumes them; after Close they are dropped.
func (f *Frame) PostUpdate(completely bool) {
	if f == nil || f.closed.Load() {
		return
	}
	if completely {
		f.completely.Store(true)
	}
	if f.pending.CompareAndSwap(false, true) {
		if err := f.screen.PostEvent(&redrawEvent{when: time.Now()}); err != nil {
			f.pending.Store(false)
		}
	}
}

// Run enters the terminal event loop until Close.
func (f *Frame) Run() error {
	defer f.screen.Fini()
	for {
		ev := f.screen.PollEvent()
		if ev == nil || f.closed.Load() {
			return nil
		}
		switch e := ev.(type) {
		case *redrawEvent:
			f.redraw()
		case *tcell.EventResize:
			f.screen.Sync()
			f.completely.Store(true)
			f.redraw()
		case *tcell.EventKey:
			f.handleKey(e)
		case *tcell.EventMouse:
			f.handleMouse(e)
		}
	}
}

// Close shuts the frame down and unblocks Run.
func (f *Frame) Close() {
	f.closeOnce.Do(func() {
		f.closed.Store(true)
		// Wake PollEvent so Run observes the closed flag.
		_ = f.screen.PostEvent(&redrawEvent{when: time.Now()})
	})
}

func (f *Frame) redraw() {
	f.pending.Store(false)
	completely := f.completely.Swap(false)
	if f.onRedraw == nil {
		return
	}
	f.painter.resetClip()
	f.onRedraw(f.painter, completely)
}

func (f *Frame) handleKey(e *tcell.EventKey) {
	mods := translateMods(e.Modifiers())
	code := event.KeyUnknown
	switch e.Key() {
	case tcell.KeyRune:
		if e.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			if f.onInputChar != nil {
				f.onInputChar(event.Char{Rune: e.Rune()})
			}
			if e.Rune() == ' ' {
				code = event.KeySpace
			}
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		code = event.KeyBackspace
	case tcell.KeyDelete:
		code = event.KeyDelete
	case tcell.KeyLeft:
		code = event.KeyLeft
	case tcell.KeyRight:
		code = event.KeyRight
	case tcell.KeyUp:
		code = event.KeyUp
	case tcell.KeyDown:
		code = event.KeyDown
	case tcell.KeyPgUp:
		code = event.KeyPageUp
	case tcell.KeyPgDn:
		code = event.KeyPageDown
	case tcell.KeyTab:
		code = event.KeyTab
	case tcell.KeyBacktab:
		code = event.KeyTab
		mods |= event.ModShift
	case tcell.KeyEnter:
		code = event.KeyEnter
	case tcell.KeyEscape:
		code = event.KeyEscape
	}
	if code == event.KeyUnknown || f.onInputKey == nil {
		return
	}
	// Terminals report only presses.
	f.onInputKey(event.Key{Code: code, Action: event.ActionPress, Mods: mods})
}

func (f *Frame) handleMouse(e *tcell.EventMouse) {
	x, y := e.Position()
	pos := geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}

	if wheel := e.Buttons() & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight); wheel != 0 {
		if f.onMouseWheel != nil {
			var ev event.Wheel
			ev.Pos = pos
			switch {
			case wheel&tcell.WheelUp != 0:
				ev.OffsetY = -1
			case wheel&tcell.WheelDown != 0:
				ev.OffsetY = 1
			case wheel&tcell.WheelLeft != 0:
				ev.OffsetX = -1
			case wheel&tcell.WheelRight != 0:
				ev.OffsetX = 1
			}
			f.onMouseWheel(ev)
		}
		return
	}

	buttons := e.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	pressed := buttons &^ f.lastButtons
	released := f.lastButtons &^ buttons
	f.lastButtons = buttons

	switch {
	case pressed != 0:
		if f.onMouseDown != nil {
			f.onMouseDown(event.Mouse{Pos: pos, Button: translateButton(pressed)})
		}
	case released != 0:
		if f.onMouseUp != nil {
			f.onMouseUp(event.Mouse{Pos: pos, Button: translateButton(released)})
		}
	default:
		if f.onCursorPos != nil {
			f.onCursorPos(event.Mouse{Pos: pos, Button: translateButton(buttons)})
		}
	}
}

func translateButton(b tcell.ButtonMask) event.MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return event.ButtonLeft
	case b&tcell.Button2 != 0:
		return event.ButtonRight
	case b&tcell.Button3 != 0:
		return event.ButtonMiddle
	}
	return event.ButtonNone
}

func translateMods(m tcell.ModMask) int {
	var out int
	if m&tcell.ModShift != 0 {
		out |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= event.ModAlt
	}
	return out
}

var _ backend.Frame = (*Frame)(nil)
