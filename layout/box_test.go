package layout

import (
	"testing"

	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/runtime"
)

func TestBox_ArrangeOverlapsChildren(t *testing.T) {
	under := newBlock()
	under.FitParent()
	over := newMeasured(30, 20)
	box := NewBox(under, over)
	box.WidgetBase().MoveTo(geom.Point{X: 10, Y: 10})
	box.WidgetBase().Resize(geom.Size{Width: 100, Height: 80})
	box.Arrange(testPainter())

	if p := under.Pos(); p != (geom.Point{X: 10, Y: 10}) {
		t.Fatalf("under pos = %v, want box origin", p)
	}
	if p := over.Pos(); p != (geom.Point{X: 10, Y: 10}) {
		t.Fatalf("over pos = %v, want box origin", p)
	}
	if s := under.Size(); s != (geom.Size{Width: 100, Height: 80}) {
		t.Fatalf("expanding child size = %v, want full box", s)
	}
	if s := over.Size(); s != (geom.Size{Width: 30, Height: 20}) {
		t.Fatalf("content child size = %v, want measured size", s)
	}
}

func TestBox_MeasureIsLargestChild(t *testing.T) {
	box := NewBox(newMeasured(30, 60), newMeasured(50, 20))
	got := box.Measure(testPainter())
	if got != (geom.Size{Width: 50, Height: 60}) {
		t.Fatalf("measured = %v, want {50 60}", got)
	}
}

func TestBox_PaintOrderByZ(t *testing.T) {
	a, b, c := newBlock(), newBlock(), newBlock()
	a.ZOrder(1)
	// b and c share z 0 and keep declaration order.
	box := NewBox(a, b, c)

	painted := box.PaintOrder()
	want := []runtime.Widget{b, c, a}
	for i := range want {
		if painted[i] != want[i] {
			t.Fatalf("paint order[%d] = %T (wrong child)", i, painted[i])
		}
	}

	hits := box.HitOrder()
	wantHits := []runtime.Widget{a, c, b}
	for i := range wantHits {
		if hits[i] != wantHits[i] {
			t.Fatalf("hit order[%d] is the wrong child", i)
		}
	}
}

func TestNewBox_PanicsOnUnmeasurableContentChild(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a construction panic")
		}
	}()
	bad := newBlock()
	bad.FitContent()
	NewBox(bad)
}
