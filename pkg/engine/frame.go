// pkg/engine/frame.go
package engine

import "time"

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// FrameCallback runs once when its frame is flushed.
type FrameCallback func(now time.Time)

type pendingFrame struct {
	id FrameID
	cb FrameCallback
}

// FrameQueue holds one-shot callbacks for the next frame, in request order.
// A callback that requests another frame during Flush lands in the following
// frame, never the current one. The queue is not safe for concurrent use; it
// belongs to the goroutine that drives the frames.
type FrameQueue struct {
	nextID  FrameID
	pending []pendingFrame
	running []pendingFrame // batch being flushed
}

// NewFrameQueue creates an empty frame queue
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Request schedules cb for the next flush.
func (q *FrameQueue) Request(cb FrameCallback) FrameID {
	q.nextID++
	q.pending = append(q.pending, pendingFrame{id: q.nextID, cb: cb})
	return q.nextID
}

// Cancel drops a pending callback, including one later in the batch being
// flushed. Unknown or already-run ids are ignored.
func (q *FrameQueue) Cancel(id FrameID) {
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].cb = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next flush.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Flush runs every callback requested before the call and returns how many ran.
func (q *FrameQueue) Flush(now time.Time) int {
	q.running = q.pending
	q.pending = nil
	defer func() { q.running = nil }()

	ran := 0
	for i := range q.running {
		if cb := q.running[i].cb; cb != nil {
			q.running[i].cb = nil
			cb(now)
			ran++
		}
	}
	return ran
}
