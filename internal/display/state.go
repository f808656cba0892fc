package display

import (
	"image"
	"sync/atomic"
)

// Phase is the externally visible status of the click-to-fetch overlay.
type Phase uint8

const (
	Idle Phase = iota
	Pending
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is one consistent view of the display state.
// Image is set only when Phase is Succeeded, Err only when Phase is Failed.
// Generation identifies the fetch that produced it; Idle is generation 0.
type Snapshot struct {
	Phase      Phase
	Image      image.Image
	Err        error
	Generation uint64
}

// Loading reports whether a fetch is in flight.
func (s Snapshot) Loading() bool { return s.Phase == Pending }

// Done reports whether a fetched image is available.
func (s Snapshot) Done() bool { return s.Phase == Succeeded && s.Image != nil }

// State holds the current Snapshot. Fetch goroutines write it and the render loop reads it
// every frame; every transition swaps the whole snapshot so readers never see a mix.
type State struct {
	cur atomic.Pointer[Snapshot]
	gen atomic.Uint64
}

// New returns an idle State.
func New() *State {
	s := &State{}
	s.cur.Store(&Snapshot{Phase: Idle})
	return s
}

// Load returns the current snapshot.
func (s *State) Load() Snapshot {
	if p := s.cur.Load(); p != nil {
		return *p
	}
	return Snapshot{Phase: Idle}
}

// Begin moves to Pending under a new generation and returns it. Results of older
// generations are dropped by Resolve.
func (s *State) Begin() uint64 {
	gen := s.gen.Add(1)
	s.cur.Store(&Snapshot{Phase: Pending, Generation: gen})
	return gen
}

// Resolve records the outcome of fetch gen. It returns false when a newer fetch has
// started since, in which case nothing changes.
func (s *State) Resolve(gen uint64, img image.Image, err error) bool {
	next := &Snapshot{Phase: Succeeded, Image: img, Generation: gen}
	if err != nil {
		next = &Snapshot{Phase: Failed, Err: err, Generation: gen}
	}
	for {
		cur := s.cur.Load()
		if cur == nil || cur.Generation != gen || cur.Phase != Pending {
			return false
		}
		if s.cur.CompareAndSwap(cur, next) {
			return true
		}
	}
}
