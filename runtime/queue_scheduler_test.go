package runtime

import (
	"testing"

	"github.com/i2y/castella-go/state"
)

func TestQueueScheduler_Wakes(t *testing.T) {
	queue := state.NewQueue()
	woken := 0
	scheduler := NewQueueScheduler(queue, func() {
		woken++
	})

	scheduler.Schedule(func() {})
	if woken != 1 {
		t.Fatalf("expected 1 wake, got %d", woken)
	}
}

func TestQueueScheduler_CoalescesWakes(t *testing.T) {
	queue := state.NewQueue()
	woken := 0
	scheduler := NewQueueScheduler(queue, func() {
		woken++
	})

	scheduler.Schedule(func() {})
	scheduler.Schedule(func() {})
	if woken != 1 {
		t.Fatalf("expected 1 wake, got %d", woken)
	}

	scheduler.resetPending()
	scheduler.Schedule(func() {})
	if woken != 2 {
		t.Fatalf("expected 2 wakes after reset, got %d", woken)
	}
}

func TestQueueScheduler_QueuesCallbacks(t *testing.T) {
	queue := state.NewQueue()
	scheduler := NewQueueScheduler(queue, func() {})

	ran := 0
	scheduler.Schedule(func() { ran++ })
	scheduler.Schedule(func() { ran++ })
	if ran != 0 {
		t.Fatalf("callbacks ran before flush")
	}
	if n := queue.Flush(); n != 2 {
		t.Fatalf("expected 2 flushed callbacks, got %d", n)
	}
	if ran != 2 {
		t.Fatalf("expected 2 callbacks run, got %d", ran)
	}
}
