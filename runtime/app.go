package runtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/state"
)

// DefaultBackground fills the surface before each paint pass.
const DefaultBackground = "#101114"

// AppConfig configures a runtime App.
type AppConfig struct {
	Frame backend.Frame
	Root  Widget

	// StateQueue carries callbacks from other goroutines onto the UI
	// goroutine. A fresh queue is created when nil.
	StateQueue *state.Queue

	// Background overrides the surface clear color.
	Background string
}

// App runs a widget tree against a frame. One frame callback cycle is
// one tick: pending cross-goroutine callbacks flush first, then dirty
// components rebuild, then layout, then paint.
//
// All App methods except RequestRepaint, StateScheduler-scheduled work,
// Spawn, After, and Every must be called from the UI goroutine.
type App struct {
	frame          backend.Frame
	layers         []Widget
	buildOwner     *BuildOwner
	focus          *FocusManager
	dispatch       dispatcher
	queue          *state.Queue
	queueScheduler *QueueScheduler
	background     string
	keyHook        func(event.Key) bool

	taskCtx    context.Context
	taskCancel context.CancelFunc

	frameMu        sync.Mutex
	frameCallbacks []func(time.Time) bool
}

// NewApp creates an App from config and mounts the root widget.
func NewApp(cfg AppConfig) *App {
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	background := cfg.Background
	if background == "" {
		background = DefaultBackground
	}
	app := &App{
		frame:      cfg.Frame,
		queue:      queue,
		focus:      NewFocusManager(),
		background: background,
	}
	app.dispatch.app = app
	app.buildOwner = NewBuildOwner(func() { app.RequestRepaint(false) })
	app.queueScheduler = NewQueueScheduler(queue, func() { app.RequestRepaint(false) })
	if cfg.Root != nil {
		app.layers = []Widget{cfg.Root}
		bindTree(cfg.Root, app)
		mountTree(cfg.Root)
	}
	return app
}

// Frame returns the frame the app draws into.
func (a *App) Frame() backend.Frame {
	if a == nil {
		return nil
	}
	return a.frame
}

// StateScheduler returns a scheduler that marshals callbacks onto the
// UI goroutine and wakes the frame to run them.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.queueScheduler == nil {
		return nil
	}
	return a.queueScheduler
}

// HandleKeys installs a hook that sees every key event before focus
// dispatch. Returning true consumes the event.
func (a *App) HandleKeys(fn func(ev event.Key) bool) {
	if a == nil {
		return
	}
	a.keyHook = fn
}

// Focus returns the focus manager.
func (a *App) Focus() *FocusManager {
	if a == nil {
		return nil
	}
	return a.focus
}

// RequestRepaint asks the frame for a redraw. Safe from any goroutine;
// requests are coalesced by the frame.
func (a *App) RequestRepaint(completely bool) {
	if a == nil || a.frame == nil {
		return
	}
	a.frame.PostUpdate(completely)
}

// PushLayer mounts w above the current layers. Only the top layer
// receives input, so a pushed layer behaves as a modal surface.
func (a *App) PushLayer(w Widget) {
	if a == nil || w == nil {
		return
	}
	bindTree(w, a)
	mountTree(w)
	a.layers = append(a.layers, w)
	a.RequestRepaint(true)
}

// PopLayer unmounts the top layer. The base layer never pops.
func (a *App) PopLayer() {
	if a == nil || len(a.layers) <= 1 {
		return
	}
	top := a.layers[len(a.layers)-1]
	a.layers = a.layers[:len(a.layers)-1]
	unmountTree(top)
	a.RequestRepaint(true)
}

// LayerCount returns the number of mounted layers.
func (a *App) LayerCount() int {
	if a == nil {
		return 0
	}
	return len(a.layers)
}

func (a *App) topLayer() Widget {
	if a == nil || len(a.layers) == 0 {
		return nil
	}
	return a.layers[len(a.layers)-1]
}

// OnFrame registers a per-tick callback, invoked at the start of every
// redraw with the tick time. The callback stays registered until it
// returns false. Animations are driven through this hook.
func (a *App) OnFrame(fn func(now time.Time) bool) {
	if a == nil || fn == nil {
		return
	}
	a.frameMu.Lock()
	a.frameCallbacks = append(a.frameCallbacks, fn)
	a.frameMu.Unlock()
	a.RequestRepaint(false)
}

func (a *App) runFrameCallbacks(now time.Time) bool {
	a.frameMu.Lock()
	callbacks := a.frameCallbacks
	a.frameCallbacks = nil
	a.frameMu.Unlock()
	if len(callbacks) == 0 {
		return false
	}
	kept := callbacks[:0]
	state.Batch(func() {
		for _, fn := range callbacks {
			if fn(now) {
				kept = append(kept, fn)
			}
		}
	})
	a.frameMu.Lock()
	// Registrations made during the loop landed on the nil slice;
	// they run starting next tick, after the surviving callbacks.
	a.frameCallbacks = append(kept, a.frameCallbacks...)
	n := len(a.frameCallbacks)
	a.frameMu.Unlock()
	return n > 0
}

// Spawn runs fn on its own goroutine under the app's task context,
// which cancels when Run returns.
func (a *App) Spawn(fn func(ctx context.Context)) {
	if a == nil || fn == nil {
		return
	}
	ctx := a.taskCtx
	if ctx == nil {
		ctx = context.Background()
	}
	go fn(ctx)
}

// After runs fn on the UI goroutine once delay elapses.
func (a *App) After(delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	a.Spawn(func(ctx context.Context) {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			a.queueScheduler.Schedule(fn)
		}
	})
}

// Every runs fn on the UI goroutine at a fixed interval until fn
// returns false.
func (a *App) Every(interval time.Duration, fn func(now time.Time) bool) {
	if fn == nil || interval <= 0 {
		return
	}
	a.Spawn(func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				done := make(chan bool, 1)
				a.queueScheduler.Schedule(func() {
					done <- fn(now)
				})
				select {
				case <-ctx.Done():
					return
				case keep := <-done:
					if !keep {
						return
					}
				}
			}
		}
	})
}

// Run wires input callbacks to the frame and enters its event loop,
// blocking until the frame closes or ctx cancels.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.frame == nil {
		return errors.New("frame is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	a.taskCtx = taskCtx
	a.taskCancel = taskCancel
	defer func() {
		taskCancel()
		a.taskCtx = nil
		a.taskCancel = nil
	}()

	f := a.frame
	f.OnMouseDown(a.dispatch.mouseDown)
	f.OnMouseUp(a.dispatch.mouseUp)
	f.OnCursorPos(a.dispatch.cursorPos)
	f.OnMouseWheel(a.dispatch.mouseWheel)
	f.OnInputChar(a.dispatch.inputChar)
	f.OnInputKey(a.dispatch.inputKey)
	f.OnRedraw(a.redraw)

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			f.Close()
		}()
	}

	f.PostUpdate(true)
	err := f.Run()
	a.queue.Close()
	if err == nil {
		err = context.Cause(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	return err
}

// Quit closes the frame, unblocking Run.
func (a *App) Quit() {
	if a == nil || a.frame == nil {
		return
	}
	a.frame.Close()
}

// redraw is the frame's paint callback: one tick of the runtime.
func (a *App) redraw(p backend.Painter, completely bool) {
	animating := a.runFrameCallbacks(time.Now())

	a.queueScheduler.resetPending()
	a.queue.Flush()
	a.buildOwner.Flush()

	size := a.frame.Size()
	for i, layer := range a.layers {
		b := layer.WidgetBase()
		w, h := b.Size().Width, b.Size().Height
		var measured geom.Size
		if b.WidthPolicy() == Content || b.HeightPolicy() == Content {
			if m, ok := layer.(Measurable); ok {
				measured = m.Measure(p)
			}
		}
		switch b.WidthPolicy() {
		case Expanding:
			w = size.Width
		case Content:
			w = measured.Width
		}
		switch b.HeightPolicy() {
		case Expanding:
			h = size.Height
		case Content:
			h = measured.Height
		}
		b.Resize(geom.Size{Width: w, Height: h})
		pos := geom.Point{}
		if i > 0 {
			// Overlay layers center within the frame.
			pos = geom.Point{X: (size.Width - w) / 2, Y: (size.Height - h) / 2}
		}
		b.MoveTo(pos)
		arrangeTree(layer, p)
	}
	a.focus.Rebuild(a.topLayer())

	p.Save()
	p.SetStyle(backend.Style{Fill: backend.FillStyle{Color: a.background}})
	p.ClearAll()
	p.Restore()
	for _, layer := range a.layers {
		paintTree(layer, p, geom.Point{})
	}
	p.Flush()

	// Builds scheduled during this tick and running animations get the
	// next one.
	if animating || a.buildOwner.Dirty() {
		a.RequestRepaint(false)
	}
}

// widgetUnmounted clears every runtime reference to w.
func (a *App) widgetUnmounted(w Widget) {
	if a == nil || w == nil {
		return
	}
	a.focus.Release(w)
	a.dispatch.widgetUnmounted(w)
	if c, ok := w.(*Component); ok {
		a.buildOwner.Discard(c)
	}
}

// paintOrderer overrides the order children are painted in; Box uses
// it for z-index stacking.
type paintOrderer interface {
	PaintOrder() []Widget
}

// paintOffsetter shifts child painting against laid-out positions;
// scrollable containers report their offset here.
type paintOffsetter interface {
	PaintOffset() geom.Point
}

func arrangeTree(w Widget, p backend.Painter) {
	c, ok := w.(Container)
	if !ok {
		return
	}
	c.Arrange(p)
	for _, child := range c.Children() {
		arrangeTree(child, p)
	}
}

// paintTree paints w and its subtree. origin is the absolute
// coordinate currently mapped to the painter's (0, 0).
func paintTree(w Widget, p backend.Painter, origin geom.Point) {
	b := w.WidgetBase()
	p.Save()
	p.Translate(b.Pos().Sub(origin))
	p.Clip(geom.RectXYWH(0, 0, b.Size().Width, b.Size().Height))
	w.Paint(p)
	b.SetDirty(false)
	if c, ok := w.(Container); ok {
		childOrigin := b.Pos()
		if po, ok := w.(paintOffsetter); ok {
			off := po.PaintOffset()
			p.Translate(geom.Point{X: -off.X, Y: -off.Y})
			childOrigin = childOrigin.Add(off)
		}
		children := c.Children()
		if po, ok := w.(paintOrderer); ok {
			children = po.PaintOrder()
		}
		for _, child := range children {
			paintTree(child, p, childOrigin)
		}
	}
	p.Restore()
}
