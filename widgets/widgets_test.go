package widgets

import (
	"testing"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/backend/imagepainter"
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/runtime"
	"github.com/i2y/castella-go/state"
)

func TestText_MeasureIncludesPadding(t *testing.T) {
	p := imagepainter.New(100, 100)
	label := NewText("hello")
	got := label.Measure(p)
	want := geom.Size{
		Width:  p.MeasureText("hello") + 2*textPadding,
		Height: backend.DefaultFontSize + 2*textPadding,
	}
	if got != want {
		t.Fatalf("measured = %v, want %v", got, want)
	}
}

func TestText_FontSizeOverridesHeight(t *testing.T) {
	p := imagepainter.New(100, 100)
	label := NewText("x").Font(backend.Font{Size: 24})
	if h := label.Measure(p).Height; h != 24+2*textPadding {
		t.Fatalf("height = %v, want %v", h, 24+2*textPadding)
	}
}

func TestText_SetTextIsIdempotent(t *testing.T) {
	label := NewText("a")
	label.SetDirty(false)
	label.SetText("a")
	if label.IsDirty() {
		t.Fatalf("unchanged text marked the widget dirty")
	}
	label.SetText("b")
	if !label.IsDirty() {
		t.Fatalf("changed text did not mark the widget dirty")
	}
	if label.Text() != "b" {
		t.Fatalf("text = %q, want b", label.Text())
	}
}

func TestButton_ClickRequiresReleaseInside(t *testing.T) {
	clicks := 0
	b := NewButton("ok").OnClick(func() { clicks++ })
	b.WidgetBase().Resize(geom.Size{Width: 60, Height: 30})

	b.MouseDown(event.Mouse{Pos: geom.Point{X: 10, Y: 10}, Button: event.ButtonLeft})
	b.MouseUp(event.Mouse{Pos: geom.Point{X: 10, Y: 10}, Button: event.ButtonLeft})
	if clicks != 1 {
		t.Fatalf("clicks = %d after inside release, want 1", clicks)
	}

	b.MouseDown(event.Mouse{Pos: geom.Point{X: 10, Y: 10}, Button: event.ButtonLeft})
	b.MouseUp(event.Mouse{Pos: geom.Point{X: 200, Y: 10}, Button: event.ButtonLeft})
	if clicks != 1 {
		t.Fatalf("clicks = %d after outside release, want still 1", clicks)
	}

	// Release without a press is ignored.
	b.MouseUp(event.Mouse{Pos: geom.Point{X: 10, Y: 10}, Button: event.ButtonLeft})
	if clicks != 1 {
		t.Fatalf("clicks = %d after bare release, want still 1", clicks)
	}
}

func TestButton_ActivateFiresClick(t *testing.T) {
	clicks := 0
	b := NewButton("ok").OnClick(func() { clicks++ })
	b.Activate()
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}
}

func TestButton_HoverOutCancelsPress(t *testing.T) {
	clicks := 0
	b := NewButton("ok").OnClick(func() { clicks++ })
	b.WidgetBase().Resize(geom.Size{Width: 60, Height: 30})

	b.MouseOver()
	b.MouseDown(event.Mouse{Pos: geom.Point{X: 10, Y: 10}, Button: event.ButtonLeft})
	b.MouseOut()
	b.MouseUp(event.Mouse{Pos: geom.Point{X: 10, Y: 10}, Button: event.ButtonLeft})
	if clicks != 0 {
		t.Fatalf("clicks = %d after the pointer left mid-press, want 0", clicks)
	}
}

func TestButton_UpdateKeepsInteractionState(t *testing.T) {
	b := NewButton("old")
	b.MouseOver()
	b.Focused()

	replacementClicks := 0
	b.Update(NewButton("new").OnClick(func() { replacementClicks++ }))
	if b.Label() != "new" {
		t.Fatalf("label = %q, want new", b.Label())
	}
	if !b.hovered || !b.focused {
		t.Fatalf("interaction state lost across update")
	}
	b.Activate()
	if replacementClicks != 1 {
		t.Fatalf("replacement callback not wired, clicks = %d", replacementClicks)
	}
}

func TestSpacer_ExpandsWithNoContent(t *testing.T) {
	s := NewSpacer()
	if s.WidthPolicy() != runtime.Expanding || s.HeightPolicy() != runtime.Expanding {
		t.Fatalf("spacer should expand on both axes")
	}
	if got := s.Measure(imagepainter.New(10, 10)); got != (geom.Size{}) {
		t.Fatalf("spacer measured = %v, want zero", got)
	}
}

func TestSignalText_TracksSignal(t *testing.T) {
	src := state.NewSignal("one")
	st := NewSignalText(src)
	st.Mount()
	defer st.Unmount()

	if st.Text.Text() != "one" {
		t.Fatalf("initial text = %q, want one", st.Text.Text())
	}
	src.Set("two")
	if st.Text.Text() != "two" {
		t.Fatalf("text = %q after signal change, want two", st.Text.Text())
	}
}

func TestSignalTextf_FormatsValue(t *testing.T) {
	src := state.NewSignal(41)
	st := NewSignalTextf("count: %d", src)
	st.Mount()
	defer st.Unmount()

	src.Set(42)
	if st.Text.Text() != "count: 42" {
		t.Fatalf("text = %q, want count: 42", st.Text.Text())
	}
}

func TestSignalText_UnmountStopsTracking(t *testing.T) {
	src := state.NewSignal("one")
	st := NewSignalText(src)
	st.Mount()
	st.Unmount()

	src.Set("two")
	if st.Text.Text() != "one" {
		t.Fatalf("text = %q after unmount, want one", st.Text.Text())
	}
}

func TestSignalText_UpdateRebindsToNewSource(t *testing.T) {
	first := state.NewSignal("a")
	second := state.NewSignal("b")
	st := NewSignalText(first)
	st.Mount()
	defer st.Unmount()

	st.Update(NewSignalText(second))
	if st.Text.Text() != "b" {
		t.Fatalf("text = %q after rebind, want b", st.Text.Text())
	}
	first.Set("stale")
	if st.Text.Text() != "b" {
		t.Fatalf("old source still tracked, text = %q", st.Text.Text())
	}
	second.Set("fresh")
	if st.Text.Text() != "fresh" {
		t.Fatalf("new source not tracked, text = %q", st.Text.Text())
	}
}

func TestComputedText_TracksDerivedValue(t *testing.T) {
	count := state.NewSignal(1)
	parity := state.NewComputed(func() string {
		if count.Get()%2 == 0 {
			return "even"
		}
		return "odd"
	}, count)
	st := NewComputedText(parity)
	st.Mount()
	defer st.Unmount()

	if st.Text.Text() != "odd" {
		t.Fatalf("initial text = %q, want odd", st.Text.Text())
	}
	count.Set(2)
	if st.Text.Text() != "even" {
		t.Fatalf("text = %q after dependency change, want even", st.Text.Text())
	}
	count.Set(4)
	if st.Text.Text() != "even" {
		t.Fatalf("text = %q, want even", st.Text.Text())
	}
}

func TestButton_MeasureUsesConfiguredFontSize(t *testing.T) {
	p := imagepainter.New(100, 100)
	plain := NewButton("go")
	sized := NewButton("go").Font(backend.Font{Size: 24})

	if h := plain.Measure(p).Height; h != backend.DefaultFontSize+2*textPadding {
		t.Fatalf("default height = %v, want %v", h, backend.DefaultFontSize+2*textPadding)
	}
	if h := sized.Measure(p).Height; h != 24+2*textPadding {
		t.Fatalf("sized height = %v, want %v", h, 24+2*textPadding)
	}
}
