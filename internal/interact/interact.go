package interact

import (
	"context"
	"image"
	"sync"
	"time"

	"cake-saver/internal/display"
	"cake-saver/internal/logger"
	"cake-saver/internal/physics"

	"github.com/golang/geo/r2"
)

// Fetcher retrieves the image shown after a cake is clicked.
type Fetcher interface {
	Fetch(ctx context.Context) (image.Image, error)
}

// Handler turns clicks on cakes into image fetches. Each fetch runs in its own goroutine
// and reports through the display state; the tick loop never waits on it.
type Handler struct {
	world   *physics.World
	display *display.State
	fetcher Fetcher
	log     *logger.Logger
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a Handler. A zero timeout leaves fetches bounded only by the Fetcher itself.
func New(world *physics.World, state *display.State, fetcher Fetcher, log *logger.Logger, timeout time.Duration) *Handler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Handler{
		world:   world,
		display: state,
		fetcher: fetcher,
		log:     log,
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Click hit-tests p against the cakes in order and, on the first hit, starts one fetch.
// It reports whether a fetch was started. A click during a pending fetch starts a new
// one; the older result is then discarded.
func (h *Handler) Click(p r2.Point) bool {
	idx, ok := h.world.BodyAt(p)
	if !ok {
		return false
	}
	gen := h.display.Begin()
	h.wg.Add(1)
	go h.fetch(gen, idx)
	return true
}

func (h *Handler) fetch(gen uint64, idx int) {
	defer h.wg.Done()
	ctx := h.ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	img, err := h.fetcher.Fetch(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Logf("Error fetching the image for cake %d: %v", idx, err)
		}
		h.display.Resolve(gen, nil, err)
		return
	}
	h.display.Resolve(gen, img, nil)
}

// Wait blocks until every started fetch has finished.
func (h *Handler) Wait() {
	h.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to return.
func (h *Handler) Close() {
	h.cancel()
	h.wg.Wait()
}
