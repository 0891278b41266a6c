package containers

import (
	"errors"
	"testing"
)

func TestRingQueueWraps(t *testing.T) {
	rq := NewRingQueue[int](3)
	if _, err := rq.Dequeue(); !errors.Is(err, ErrQueueEmpty) {
		t.Fatalf("expected ErrQueueEmpty, got %v", err)
	}
	for i := 1; i <= 3; i++ {
		if err := rq.Enqueue(i); err != nil {
			t.Fatal(err)
		}
	}
	if err := rq.Enqueue(4); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}

	v, _ := rq.Dequeue()
	if v != 1 {
		t.Errorf("expected 1, got %d", v)
	}
	// The write index wraps to the freed slot.
	if err := rq.Enqueue(4); err != nil {
		t.Fatal(err)
	}
	if front, _ := rq.Peek(); front != 2 {
		t.Errorf("expected 2 at the front, got %d", front)
	}

	got := rq.Drain()
	if len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 4 {
		t.Errorf("unexpected drain order %v", got)
	}
	if !rq.IsEmpty() || rq.Len() != 0 || rq.Cap() != 3 {
		t.Error("queue should be empty after drain")
	}
}
