// Package runtime owns the widget tree: the base widget contract, the
// component build cycle, the build scheduler, input dispatch, and the
// application loop that ties them to a backend frame.
package runtime

import (
	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
)

// SizePolicy is the per-axis sizing rule resolved by the layout engine.
type SizePolicy int

const (
	// Expanding shares leftover container space by flex weight.
	Expanding SizePolicy = iota
	// Fixed uses the explicitly configured size.
	Fixed
	// Content uses the intrinsic size reported by Measure.
	Content
)

func (p SizePolicy) String() string {
	switch p {
	case Fixed:
		return "fixed"
	case Content:
		return "content"
	default:
		return "expanding"
	}
}

// Widget is a node in the runtime tree. Concrete widgets embed Base
// (which provides the WidgetBase accessor) and implement Paint;
// everything else the core needs is expressed as optional capability
// interfaces.
type Widget interface {
	WidgetBase() *Base
	// Paint draws the widget into its local coordinate space: the
	// runtime translates and clips the painter to the widget's bounds
	// before calling it.
	Paint(p backend.Painter)
}

// Measurable reports an intrinsic size, required for Content sizing.
type Measurable interface {
	Measure(p backend.TextMeasurer) geom.Size
}

// Container exposes and arranges child widgets.
type Container interface {
	Widget
	Children() []Widget
	// Arrange runs the container's layout pass: resolve every child's
	// size and absolute position within the container's bounds.
	Arrange(p backend.Painter)
}

// PointerHandler receives press/release events in local coordinates.
type PointerHandler interface {
	MouseDown(ev event.Mouse)
	MouseUp(ev event.Mouse)
}

// DragHandler receives drag deltas while the pointer is held.
type DragHandler interface {
	MouseDrag(ev event.Mouse)
}

// HoverHandler is told when the pointer enters and leaves the widget.
type HoverHandler interface {
	MouseOver()
	MouseOut()
}

// WheelHandler receives scroll wheel events.
type WheelHandler interface {
	MouseWheel(ev event.Wheel)
}

// ScrollTarget is a container that owns a scroll axis; wheel events
// route to the nearest ScrollTarget ancestor for their dominant axis.
type ScrollTarget interface {
	WheelHandler
	HasScrollbar(horizontal bool) bool
}

// CharHandler receives committed text input while focused.
type CharHandler interface {
	InputChar(ev event.Char)
}

// KeyHandler receives raw key events while focused.
type KeyHandler interface {
	InputKey(ev event.Key)
}

// FocusHandler is told when keyboard focus is gained or lost.
type FocusHandler interface {
	Focused()
	Unfocused()
}

// Activatable widgets have a primary action triggered by Enter/Space.
type Activatable interface {
	Activate()
}

// Updater lets the reconciler copy configuration from a freshly built
// widget onto the mounted one it replaces, keeping established
// geometry and interaction state.
type Updater interface {
	Update(next Widget)
}

// Binder receives the owning App when its subtree attaches. Widgets
// that subscribe to signals use this to pick up the app's UI-thread
// scheduler.
type Binder interface {
	Bind(app *App)
}

// Lifecycle hooks run when a widget enters or leaves the mounted tree.
type Lifecycle interface {
	Mount()
	Unmount()
}

// tabNone marks a widget without an explicit tab index.
const tabNone = -1

// Base carries the state every widget shares: geometry, size policies,
// flex weight, z-order, focus order, identity, and the non-owning
// parent back-reference. Embed it by value; the promoted WidgetBase
// method satisfies the Widget contract's accessor.
type Base struct {
	pos          geom.Point
	size         geom.Size
	widthPolicy  SizePolicy
	heightPolicy SizePolicy
	flex         float64
	zIndex       int
	tabIndex     int
	key          string
	background   string
	textColor    string

	parent Widget
	app    *App
	dirty  bool
}

// NewBase returns a Base with the default policies: both axes
// Expanding, flex weight 1.
func NewBase() Base {
	return Base{flex: 1, tabIndex: tabNone, dirty: true}
}

// WidgetBase returns the widget's shared state block. The accessor is
// not named Base: embedding the Base struct by value would shadow a
// promoted method of that name with the field.
func (b *Base) WidgetBase() *Base { return b }

// Pos returns the absolute position assigned by layout.
func (b *Base) Pos() geom.Point { return b.pos }

// Size returns the size assigned by layout (or configured for Fixed).
func (b *Base) Size() geom.Size { return b.size }

// Bounds returns the absolute rectangle occupied by the widget.
func (b *Base) Bounds() geom.Rect {
	return geom.Rect{Origin: b.pos, Size: b.size}
}

// ContainsPoint reports whether p (absolute) lies inside the widget.
func (b *Base) ContainsPoint(p geom.Point) bool {
	return b.pos.X < p.X && p.X < b.pos.X+b.size.Width &&
		b.pos.Y < p.Y && p.Y < b.pos.Y+b.size.Height
}

// MoveTo sets the absolute position, marking the widget dirty on
// change.
func (b *Base) MoveTo(p geom.Point) {
	if p != b.pos {
		b.pos = p
		b.dirty = true
	}
}

// Resize sets the layout size, marking the widget dirty on change.
func (b *Base) Resize(s geom.Size) {
	if s != b.size {
		b.size = s
		b.dirty = true
	}
}

// SetWidth sets the layout width only.
func (b *Base) SetWidth(w float64) {
	if w != b.size.Width {
		b.size.Width = w
		b.dirty = true
	}
}

// SetHeight sets the layout height only.
func (b *Base) SetHeight(h float64) {
	if h != b.size.Height {
		b.size.Height = h
		b.dirty = true
	}
}

// WidthPolicy returns the horizontal size policy.
func (b *Base) WidthPolicy() SizePolicy { return b.widthPolicy }

// HeightPolicy returns the vertical size policy.
func (b *Base) HeightPolicy() SizePolicy { return b.heightPolicy }

// FlexWeight returns the share weight used for Expanding distribution.
func (b *Base) FlexWeight() float64 { return b.flex }

// ZIndex returns the stacking order within a Box container.
func (b *Base) ZIndex() int { return b.zIndex }

// TabIndex returns the explicit focus order and whether one is set.
func (b *Base) TabIndex() (int, bool) {
	return b.tabIndex, b.tabIndex != tabNone
}

// Key returns the identity key used by the reconciler, if any.
func (b *Base) Key() string { return b.key }

// Background returns the configured background color ("" = theme
// default).
func (b *Base) Background() string { return b.background }

// TextColor returns the configured text color ("" = theme default).
func (b *Base) TextColor() string { return b.textColor }

// Parent returns the non-owning parent back-reference.
func (b *Base) Parent() Widget { return b.parent }

// SetParent installs the back-reference. Containers call this when a
// child is added; it never transfers ownership.
func (b *Base) SetParent(parent Widget) { b.parent = parent }

// ClearParent drops the back-reference if it still points at parent.
func (b *Base) ClearParent(parent Widget) {
	if b.parent == parent {
		b.parent = nil
	}
}

// IsDirty reports whether the widget needs repainting.
func (b *Base) IsDirty() bool { return b.dirty }

// SetDirty sets or clears the repaint flag.
func (b *Base) SetDirty(flag bool) { b.dirty = flag }

// App returns the application the widget is mounted under, or nil.
func (b *Base) App() *App { return b.app }

// Invalidate marks the widget dirty and requests a repaint from the
// application, if mounted.
func (b *Base) Invalidate() {
	b.dirty = true
	if b.app != nil {
		b.app.RequestRepaint(false)
	}
}

// Fluent configuration surface. The setters return the Base so
// construction reads as a chain; concrete widgets expose it through
// the embedded Base.

// WithWidthPolicy sets the horizontal size policy.
func (b *Base) WithWidthPolicy(p SizePolicy) *Base {
	b.widthPolicy = p
	return b
}

// WithHeightPolicy sets the vertical size policy.
func (b *Base) WithHeightPolicy(p SizePolicy) *Base {
	b.heightPolicy = p
	return b
}

// FixedWidth pins the width to w.
func (b *Base) FixedWidth(w float64) *Base {
	b.widthPolicy = Fixed
	b.size.Width = w
	return b
}

// FixedHeight pins the height to h.
func (b *Base) FixedHeight(h float64) *Base {
	b.heightPolicy = Fixed
	b.size.Height = h
	return b
}

// FixedSize pins both axes.
func (b *Base) FixedSize(w, h float64) *Base {
	return b.FixedWidth(w).FixedHeight(h)
}

// FitParent expands on both axes.
func (b *Base) FitParent() *Base {
	b.widthPolicy = Expanding
	b.heightPolicy = Expanding
	return b
}

// FitContent sizes both axes to the measured content.
func (b *Base) FitContent() *Base {
	b.widthPolicy = Content
	b.heightPolicy = Content
	return b
}

// FitContentWidth sizes the width to the measured content.
func (b *Base) FitContentWidth() *Base {
	b.widthPolicy = Content
	return b
}

// FitContentHeight sizes the height to the measured content.
func (b *Base) FitContentHeight() *Base {
	b.heightPolicy = Content
	return b
}

// Flex sets the weight used when distributing leftover space.
func (b *Base) Flex(weight float64) *Base {
	if weight < 0 {
		weight = 0
	}
	b.flex = weight
	return b
}

// ZOrder sets the stacking index within a Box.
func (b *Base) ZOrder(z int) *Base {
	b.zIndex = z
	return b
}

// Tab sets the explicit focus order.
func (b *Base) Tab(index int) *Base {
	if index < 0 {
		index = tabNone
	}
	b.tabIndex = index
	return b
}

// WithKey sets the identity key used by the reconciler.
func (b *Base) WithKey(key string) *Base {
	b.key = key
	return b
}

// BgColor sets the background color.
func (b *Base) BgColor(rgb string) *Base {
	b.background = rgb
	return b
}

// FgColor sets the text color.
func (b *Base) FgColor(rgb string) *Base {
	b.textColor = rgb
	return b
}

// copyConfig transfers configuration (not geometry, parent, or dirty
// state) from next onto b. The reconciler uses it when a mounted
// widget is kept across a rebuild.
func (b *Base) copyConfig(next *Base) {
	b.widthPolicy = next.widthPolicy
	b.heightPolicy = next.heightPolicy
	b.flex = next.flex
	b.zIndex = next.zIndex
	b.tabIndex = next.tabIndex
	b.key = next.key
	b.background = next.background
	b.textColor = next.textColor
	if next.widthPolicy == Fixed {
		b.SetWidth(next.size.Width)
	}
	if next.heightPolicy == Fixed {
		b.SetHeight(next.size.Height)
	}
}
