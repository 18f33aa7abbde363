package backend

import (
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
)

// Frame is the platform boundary: a window or surface with an event
// loop. The runtime registers its callbacks, then enters Run; all
// callbacks are invoked on the frame's UI goroutine.
type Frame interface {
	OnMouseDown(func(event.Mouse))
	OnMouseUp(func(event.Mouse))
	OnMouseWheel(func(event.Wheel))
	OnCursorPos(func(event.Mouse))
	OnInputChar(func(event.Char))
	OnInputKey(func(event.Key))

	// OnRedraw registers the paint callback. completely reports
	// whether the whole surface must be repainted (resize, expose).
	OnRedraw(func(p Painter, completely bool))

	Painter() Painter
	Size() geom.Size

	// PostUpdate requests a redraw from any goroutine. The request is
	// coalesced by the frame and delivered on the UI goroutine. After
	// the frame shuts down the request is silently dropped.
	PostUpdate(completely bool)

	// Run enters the platform event loop and blocks until the frame
	// closes.
	Run() error

	// Close shuts the frame down and unblocks Run.
	Close()
}
