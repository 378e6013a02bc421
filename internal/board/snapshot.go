package board

import "sync/atomic"

// Snapshot holds the latest Result for readers outside the render loop
// (the HTTP API). The whole Result is swapped atomically, so a reader
// never observes a partially written cycle.
type Snapshot struct {
	latest atomic.Pointer[Result]
}

// Publish replaces the current result.
func (s *Snapshot) Publish(r Result) {
	s.latest.Store(&r)
}

// Latest returns the most recently published result. ok is false until
// the first cycle completes.
func (s *Snapshot) Latest() (Result, bool) {
	p := s.latest.Load()
	if p == nil {
		return Result{}, false
	}
	return *p, true
}
