package layout

import (
	"github.com/i2y/castella-go/runtime"
	"github.com/i2y/castella-go/scroll"
)

// Column lays its children out top to bottom.
type Column struct {
	linear
}

// NewColumn creates a vertical flow container.
func NewColumn(children ...runtime.Widget) *Column {
	c := &Column{}
	c.init(c, axisVertical, children)
	return c
}

// Spacing sets the gap between adjacent children.
func (c *Column) Spacing(v float64) *Column {
	c.spacing = v
	return c
}

// Scrollable lets content overflow vertically behind a scrollbar.
// Passing a state keeps the offset alive across rebuilds; nil creates
// a fresh one.
func (c *Column) Scrollable(st *scroll.State) *Column {
	c.setScrollable(st)
	return c
}

// PinToBottom keeps a scrollable column anchored to the end of growing
// content until the user scrolls away.
func (c *Column) PinToBottom() *Column {
	if c.scroll == nil {
		c.setScrollable(nil)
	}
	c.scroll.PinToBottom()
	return c
}
