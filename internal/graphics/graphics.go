package graphics

import (
	"cake-saver/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"
)

// Options describes the window.
type Options struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Hooks are the callbacks Run drives. Ready and Close may be nil.
type Hooks struct {
	Ready  func() // once, after the window and GL context exist
	Update func() // every frame, before drawing
	Draw   func() // every frame, between BeginDrawing and EndDrawing
	Close  func() // once, before the window is destroyed
}

// Run opens the window and drives the main loop until the window is closed (window button
// or ESC). The window is resizable; see Bounds.
func Run(opts Options, hooks Hooks) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	w, h := opts.Width, opts.Height
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w, h, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.TargetFPS)

	if hooks.Ready != nil {
		hooks.Ready()
	}
	for !rl.WindowShouldClose() {
		hooks.Update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		hooks.Draw()
		rl.EndDrawing()
	}
	if hooks.Close != nil {
		hooks.Close()
	}
}

// Bounds returns the current drawable area. Resizes are picked up on the next call.
func Bounds() r2.Rect {
	return physics.Bounds(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
}
