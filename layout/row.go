package layout

import (
	"github.com/i2y/castella-go/runtime"
	"github.com/i2y/castella-go/scroll"
)

// Row lays its children out left to right.
type Row struct {
	linear
}

// NewRow creates a horizontal flow container.
func NewRow(children ...runtime.Widget) *Row {
	r := &Row{}
	r.init(r, axisHorizontal, children)
	return r
}

// Spacing sets the gap between adjacent children.
func (r *Row) Spacing(v float64) *Row {
	r.spacing = v
	return r
}

// Scrollable lets content overflow horizontally behind a scrollbar.
// Passing a state keeps the offset alive across rebuilds; nil creates
// a fresh one.
func (r *Row) Scrollable(st *scroll.State) *Row {
	r.setScrollable(st)
	return r
}
