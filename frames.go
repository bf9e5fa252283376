package glitch

import "time"

// FrameID identifies a requested frame callback.
type FrameID uint64

// FrameFunc is a frame callback. now is the host clock at delivery.
type FrameFunc func(now time.Duration)

// FrameSource delivers one-shot frame callbacks, in the manner of a
// display's per-frame callback. Implementations are single-threaded.
type FrameSource interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type queuedFrame struct {
	id FrameID
	fn FrameFunc
}

// FrameQueue is a FrameSource that hosts drain once per display tick by
// calling Flush. Callbacks requested during a Flush run on the next one.
type FrameQueue struct {
	pending   []queuedFrame
	running   []queuedFrame
	nextID    FrameID
	requested uint64
}

// RequestFrame implements FrameSource.
func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.nextID++
	q.requested++
	q.pending = append(q.pending, queuedFrame{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame implements FrameSource. Cancelling an unknown or already
// delivered frame is a no-op.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = queuedFrame{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
	// A frame in the batch currently being flushed.
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Flush runs every callback that was pending when it was called and returns
// how many ran.
func (q *FrameQueue) Flush(now time.Duration) int {
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(now)
		ran++
	}
	q.running = q.running[:0]
	return ran
}

// Pending returns the number of callbacks waiting for the next Flush.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Requested returns the total number of RequestFrame calls.
func (q *FrameQueue) Requested() uint64 {
	return q.requested
}
