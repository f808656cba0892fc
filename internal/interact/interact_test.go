package interact

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cake-saver/internal/display"
	"cake-saver/internal/logger"
	"cake-saver/internal/physics"

	"github.com/golang/geo/r2"
)

type fakeFetcher struct {
	calls atomic.Int32
	img   image.Image
	err   error
	block bool
}

func (f *fakeFetcher) Fetch(ctx context.Context) (image.Image, error) {
	f.calls.Add(1)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.img, f.err
}

func testWorld(t *testing.T) *physics.World {
	t.Helper()
	a, err := physics.NewBody(r2.Point{X: 100, Y: 100}, r2.Point{}, 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	b, err := physics.NewBody(r2.Point{X: 300, Y: 100}, r2.Point{}, 40, 40)
	if err != nil {
		t.Fatal(err)
	}
	return physics.NewWorld(a, b)
}

func testLogger(t *testing.T) *logger.Logger {
	return logger.New(filepath.Join(t.TempDir(), "saver.txt"))
}

func TestClickInsideFetchesOnce(t *testing.T) {
	f := &fakeFetcher{img: image.NewRGBA(image.Rect(0, 0, 300, 300))}
	state := display.New()
	h := New(testWorld(t), state, f, testLogger(t), time.Second)

	if !h.Click(r2.Point{X: 310, Y: 95}) {
		t.Fatal("expected click inside a cake to start a fetch")
	}
	h.Wait()

	if n := f.calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 fetch, got %d", n)
	}
	snap := state.Load()
	if !snap.Done() || snap.Image != f.img {
		t.Errorf("expected fetched image on display, got %+v", snap)
	}
}

func TestClickOutsideFetchesNothing(t *testing.T) {
	f := &fakeFetcher{}
	state := display.New()
	h := New(testWorld(t), state, f, testLogger(t), time.Second)

	for _, p := range []r2.Point{{X: 200, Y: 100}, {X: 120, Y: 100}, {X: 0, Y: 0}} {
		if h.Click(p) {
			t.Errorf("expected miss at %v", p)
		}
	}
	h.Wait()

	if n := f.calls.Load(); n != 0 {
		t.Errorf("expected no fetch, got %d", n)
	}
	if state.Load().Phase != display.Idle {
		t.Error("expected display to stay idle")
	}
}

func TestClickFailureLogsAndClearsLoading(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	state := display.New()
	log := testLogger(t)
	h := New(testWorld(t), state, f, log, time.Second)

	h.Click(r2.Point{X: 100, Y: 100})
	h.Wait()

	snap := state.Load()
	if snap.Loading() || snap.Phase != display.Failed {
		t.Errorf("expected failed without loading, got %+v", snap)
	}
	lines := log.Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "connection refused") {
		t.Errorf("expected the error to be logged once, got %v", lines)
	}
	if f.calls.Load() != 1 {
		t.Errorf("expected no retry, got %d calls", f.calls.Load())
	}
}

func TestClickPendingShowsLoading(t *testing.T) {
	f := &fakeFetcher{block: true}
	state := display.New()
	h := New(testWorld(t), state, f, testLogger(t), 0)

	h.Click(r2.Point{X: 100, Y: 100})
	if !state.Load().Loading() {
		t.Error("expected loading while the fetch is pending")
	}

	h.Close()
	if state.Load().Loading() {
		t.Error("expected loading cleared after Close cancels the fetch")
	}
}

func TestClickTimeout(t *testing.T) {
	f := &fakeFetcher{block: true}
	state := display.New()
	h := New(testWorld(t), state, f, testLogger(t), 10*time.Millisecond)

	h.Click(r2.Point{X: 100, Y: 100})
	h.Wait()

	snap := state.Load()
	if snap.Phase != display.Failed || !errors.Is(snap.Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline failure, got %+v", snap)
	}
}
