package display

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func TestNewIsIdle(t *testing.T) {
	s := New()
	snap := s.Load()
	if snap.Phase != Idle || snap.Loading() || snap.Done() {
		t.Errorf("expected idle snapshot, got %+v", snap)
	}

	var zero State
	if zero.Load().Phase != Idle {
		t.Error("expected zero State to read as idle")
	}
}

func TestBeginResolveSuccess(t *testing.T) {
	s := New()
	gen := s.Begin()
	if !s.Load().Loading() {
		t.Fatal("expected pending after Begin")
	}

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	if !s.Resolve(gen, img, nil) {
		t.Fatal("expected Resolve of current generation to apply")
	}
	snap := s.Load()
	if !snap.Done() || snap.Image != img || snap.Loading() {
		t.Errorf("expected succeeded with image, got %+v", snap)
	}
}

func TestResolveFailureClearsLoading(t *testing.T) {
	s := New()
	gen := s.Begin()
	boom := errors.New("boom")
	s.Resolve(gen, nil, boom)

	snap := s.Load()
	if snap.Phase != Failed || snap.Loading() || snap.Done() {
		t.Errorf("expected failed, got %+v", snap)
	}
	if !errors.Is(snap.Err, boom) {
		t.Errorf("expected error %v, got %v", boom, snap.Err)
	}
}

func TestResolveDropsStaleGeneration(t *testing.T) {
	s := New()
	first := s.Begin()
	second := s.Begin()

	if s.Resolve(first, image.NewRGBA(image.Rect(0, 0, 1, 1)), nil) {
		t.Error("expected stale Resolve to be dropped")
	}
	if snap := s.Load(); snap.Phase != Pending || snap.Generation != second {
		t.Errorf("expected pending generation %d, got %+v", second, snap)
	}
	if !s.Resolve(second, nil, errors.New("x")) {
		t.Error("expected current Resolve to apply")
	}
	if s.Resolve(second, nil, nil) {
		t.Error("expected second Resolve of same generation to be dropped")
	}
}

func TestConcurrentBeginResolve(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen := s.Begin()
			s.Resolve(gen, image.NewRGBA(image.Rect(0, 0, 1, 1)), nil)
			_ = s.Load()
		}()
	}
	wg.Wait()

	snap := s.Load()
	if snap.Phase != Pending && snap.Phase != Succeeded {
		t.Errorf("unexpected final phase %v", snap.Phase)
	}
}

func TestPhaseString(t *testing.T) {
	if Pending.String() != "pending" || Phase(42).String() != "unknown" {
		t.Error("unexpected Phase names")
	}
}
