package notefield

// FrameHandle identifies a callback queued on a FrameScheduler.
// The zero handle never refers to a queued callback.
type FrameHandle uint64

type frameTask struct {
	id FrameHandle
	fn func()
}

// FrameScheduler defers callbacks to the start of the next Update tick, the
// point where geometry from the previous frame is settled. Callbacks read
// whatever state they need when they run, not when they are queued.
type FrameScheduler struct {
	next    FrameHandle
	pending []frameTask
	running []frameTask
}

// Request queues fn for the next Flush and returns a handle for Cancel.
func (s *FrameScheduler) Request(fn func()) FrameHandle {
	s.next++
	s.pending = append(s.pending, frameTask{id: s.next, fn: fn})
	return s.next
}

// Cancel drops a queued callback. Unknown or already-run handles are ignored.
func (s *FrameScheduler) Cancel(h FrameHandle) {
	if h == 0 {
		return
	}
	for i := range s.pending {
		if s.pending[i].id == h {
			copy(s.pending[i:], s.pending[i+1:])
			s.pending[len(s.pending)-1] = frameTask{}
			s.pending = s.pending[:len(s.pending)-1]
			return
		}
	}
	// Still cancellable while a Flush is in progress.
	for i := range s.running {
		if s.running[i].id == h {
			s.running[i].fn = nil
			return
		}
	}
}

// CancelAll drops every queued callback.
func (s *FrameScheduler) CancelAll() {
	clear(s.pending)
	s.pending = s.pending[:0]
	for i := range s.running {
		s.running[i].fn = nil
	}
}

// Pending returns the number of queued callbacks.
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

// Flush runs the callbacks queued before this call, in request order.
// Callbacks queued while flushing run on the following Flush. Returns the
// number of callbacks run.
func (s *FrameScheduler) Flush() int {
	if len(s.pending) == 0 {
		return 0
	}
	s.running = append(s.running[:0], s.pending...)
	clear(s.pending)
	s.pending = s.pending[:0]

	ran := 0
	for i := range s.running {
		fn := s.running[i].fn
		if fn == nil {
			continue
		}
		s.running[i].fn = nil
		fn()
		ran++
	}
	clear(s.running)
	s.running = s.running[:0]
	return ran
}
