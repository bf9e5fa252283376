package glitch

import (
	"testing"
	"time"
)

func TestFrameQueueFlushRunsPending(t *testing.T) {
	var q FrameQueue
	var got []time.Duration
	q.RequestFrame(func(now time.Duration) { got = append(got, now) })
	q.RequestFrame(func(now time.Duration) { got = append(got, now) })
	if q.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", q.Pending())
	}
	if ran := q.Flush(5 * time.Millisecond); ran != 2 {
		t.Errorf("Flush ran %d, want 2", ran)
	}
	if len(got) != 2 || got[0] != 5*time.Millisecond {
		t.Errorf("callbacks saw %v", got)
	}
	if q.Pending() != 0 || q.Flush(0) != 0 {
		t.Error("queue should be empty after Flush")
	}
	if q.Requested() != 2 {
		t.Errorf("Requested = %d, want 2", q.Requested())
	}
}

func TestFrameQueueCancel(t *testing.T) {
	var q FrameQueue
	ran := false
	id := q.RequestFrame(func(time.Duration) { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id)
	q.CancelFrame(999)
	if q.Flush(0) != 0 || ran {
		t.Error("cancelled callback ran")
	}
}

func TestFrameQueueRequestDuringFlushRunsNextTime(t *testing.T) {
	var q FrameQueue
	count := 0
	var loop FrameFunc
	loop = func(time.Duration) {
		count++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)
	for i := 0; i < 5; i++ {
		if ran := q.Flush(0); ran != 1 {
			t.Fatalf("flush %d ran %d, want 1", i, ran)
		}
	}
	if count != 5 || q.Pending() != 1 {
		t.Errorf("count = %d, pending = %d", count, q.Pending())
	}
}

func TestFrameQueueCancelWithinRunningBatch(t *testing.T) {
	var q FrameQueue
	var second FrameID
	secondRan := false
	q.RequestFrame(func(time.Duration) { q.CancelFrame(second) })
	second = q.RequestFrame(func(time.Duration) { secondRan = true })
	if ran := q.Flush(0); ran != 1 {
		t.Errorf("Flush ran %d, want 1", ran)
	}
	if secondRan {
		t.Error("callback cancelled mid-flush still ran")
	}
}
