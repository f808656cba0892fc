package debug

import (
	"fmt"
	"runtime"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the optional FPS / tick / memory overlay in the top-right corner. Off by default.
type Debug struct {
	ShowFPS bool

	frameCount uint32
	lines      []string
	memStats   runtime.MemStats
}

// New returns a Debug overlay, shown when show is true.
func New(show bool) *Debug {
	return &Debug{ShowFPS: show}
}

// Toggle flips the overlay on or off.
func (d *Debug) Toggle() {
	d.ShowFPS = !d.ShowFPS
	d.lines = nil
}

// Draw renders the overlay for the current frame. ticks and bodies come from the simulation.
func (d *Debug) Draw(ticks uint64, bodies int) {
	if !d.ShowFPS {
		return
	}
	d.frameCount++
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		runtime.ReadMemStats(&d.memStats)
		d.lines = []string{
			fmt.Sprintf("FPS: %d", rl.GetFPS()),
			fmt.Sprintf("Ticks: %d  Cakes: %d", ticks, bodies),
			fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024)),
		}
	}

	screenW := float32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range d.lines {
		x := math32.Max(0, screenW-float32(rl.MeasureText(text, fontSize))-padding)
		rl.DrawText(text, int32(x), y, fontSize, rl.DarkGreen)
		y += lineHeight
	}
}
