package widgets

import (
	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/runtime"
)

// Spacer is an empty widget that soaks up leftover flow space.
type Spacer struct {
	runtime.Base
}

// NewSpacer creates an expanding blank.
func NewSpacer() *Spacer {
	s := &Spacer{Base: runtime.NewBase()}
	s.FitParent()
	return s
}

// Measure reports no intrinsic size.
func (s *Spacer) Measure(tm backend.TextMeasurer) geom.Size {
	return geom.Size{}
}

// Paint draws nothing.
func (s *Spacer) Paint(p backend.Painter) {}
