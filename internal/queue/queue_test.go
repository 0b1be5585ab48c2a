package queue

import (
	"testing"
	"time"
)

func TestPushPopBlockingOrder(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	for _, want := range []int{1, 2, 3} {
		got, ok := q.PopBlocking()
		if !ok || got != want {
			t.Fatalf("expected %d, got %d ok=%v", want, got, ok)
		}
	}
}

func TestPopNonBlockingOnEmpty(t *testing.T) {
	q := New[int]()
	if _, ok := q.PopNonBlocking(); ok {
		t.Fatal("expected no item on empty queue")
	}
}

func TestPopBlockingUnblocksOnStop(t *testing.T) {
	q := New[int]()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.PopBlocking()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Stop()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected false after stop with no items")
		}
	case <-time.After(time.Second):
		t.Fatal("PopBlocking did not unblock after Stop")
	}
}

func TestPopAllBatchSwap(t *testing.T) {
	q := New[int]()
	q.Push(1)
	q.Push(2)
	q.Push(3)

	batch, ok := q.PopAll()
	if !ok {
		t.Fatal("expected a batch")
	}
	if len(batch) != 3 {
		t.Fatalf("expected 3 items, got %d", len(batch))
	}
	if q.Len() != 0 {
		t.Fatalf("expected queue drained after PopAll, got len %d", q.Len())
	}
}

func TestStopDrainsQueuedItemsFirst(t *testing.T) {
	q := New[int]()
	q.Push(42)
	q.Stop()

	v, ok := q.PopBlocking()
	if !ok || v != 42 {
		t.Fatalf("expected queued item to survive stop, got %d ok=%v", v, ok)
	}

	if _, ok := q.PopBlocking(); ok {
		t.Fatal("expected false once drained after stop")
	}
}
