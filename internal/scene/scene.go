package scene

import (
	"image"

	"cake-saver/internal/assets"
	"cake-saver/internal/display"
	"cake-saver/internal/interact"
	"cake-saver/internal/saver"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/geo/r2"
)

const (
	overlayFontSize = 30
	// doneGap is the distance between the bottom of the fetched image and its caption.
	doneGap     = 30
	loadingText = "Loading..."
	doneText    = "Call API Done"
)

// Scene draws the background, the cakes and the fetch overlay, and routes clicks.
// Textures are uploaded on the first Draw so they are created after the GL context exists.
type Scene struct {
	sim     *saver.Context
	handler *interact.Handler

	cakeImages []assets.Asset
	background *assets.Asset

	cakeTex   []rl.Texture2D
	bgTex     rl.Texture2D
	texLoaded bool

	resultTex   rl.Texture2D
	resultGen   uint64 // generation the result texture was uploaded for; 0 = none
	resultValid bool
}

// New returns a scene for sim. background may be nil for a plain clear color.
func New(sim *saver.Context, handler *interact.Handler, cakes []assets.Asset, background *assets.Asset) *Scene {
	return &Scene{sim: sim, handler: handler, cakeImages: cakes, background: background}
}

// Update handles the left mouse button, then advances the simulation by one tick.
func (s *Scene) Update() {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		s.handler.Click(r2.Point{X: float64(m.X), Y: float64(m.Y)})
	}
	s.sim.Tick()
}

// Draw renders one frame. Call between BeginDrawing and EndDrawing.
func (s *Scene) Draw() {
	s.ensureTextures()
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())

	if s.background != nil && rl.IsTextureValid(s.bgTex) {
		src := rl.NewRectangle(0, 0, float32(s.bgTex.Width), float32(s.bgTex.Height))
		rl.DrawTexturePro(s.bgTex, src, rl.NewRectangle(0, 0, w, h), rl.Vector2{}, 0, rl.White)
	}

	for _, c := range s.sim.Cakes {
		bw, bh := c.Body.Extent()
		x := float32(c.Body.Position.X - bw/2)
		y := float32(c.Body.Position.Y - bh/2)
		rl.DrawTextureV(s.cakeTex[c.Asset], rl.NewVector2(x, y), rl.White)
	}

	s.drawOverlay(s.sim.Display.Load(), w, h)
}

func (s *Scene) drawOverlay(snap display.Snapshot, w, h float32) {
	switch {
	case snap.Loading():
		rl.DrawText(loadingText, centered(w, loadingText), int32(h/2), overlayFontSize, rl.Black)
	case snap.Done():
		s.syncResult(snap)
		if !s.resultValid {
			return
		}
		tw, th := float32(s.resultTex.Width), float32(s.resultTex.Height)
		pos := rl.NewVector2(math32.Floor(w/2-tw/2), math32.Floor(h/2-th/2))
		rl.DrawTextureV(s.resultTex, pos, rl.White)
		rl.DrawText(doneText, centered(w, doneText), int32(h/2+th/2+doneGap), overlayFontSize, rl.Black)
	}
}

// syncResult uploads the fetched image once per generation, replacing the previous texture.
func (s *Scene) syncResult(snap display.Snapshot) {
	if s.resultGen == snap.Generation {
		return
	}
	if s.resultValid {
		rl.UnloadTexture(s.resultTex)
		s.resultValid = false
	}
	s.resultGen = snap.Generation
	s.resultTex, s.resultValid = upload(snap.Image)
}

func (s *Scene) ensureTextures() {
	if s.texLoaded {
		return
	}
	s.texLoaded = true
	s.cakeTex = make([]rl.Texture2D, len(s.cakeImages))
	for i, a := range s.cakeImages {
		s.cakeTex[i], _ = upload(a.Image)
	}
	if s.background != nil {
		s.bgTex, _ = upload(s.background.Image)
	}
}

// Unload releases every GPU texture. Call before the window closes.
func (s *Scene) Unload() {
	for _, t := range s.cakeTex {
		if rl.IsTextureValid(t) {
			rl.UnloadTexture(t)
		}
	}
	if rl.IsTextureValid(s.bgTex) {
		rl.UnloadTexture(s.bgTex)
	}
	if s.resultValid {
		rl.UnloadTexture(s.resultTex)
		s.resultValid = false
	}
}

func upload(img image.Image) (rl.Texture2D, bool) {
	if img == nil {
		return rl.Texture2D{}, false
	}
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	return tex, rl.IsTextureValid(tex)
}

// centered returns the x at which text drawn at overlayFontSize is centered in width w.
func centered(w float32, text string) int32 {
	tw := float32(rl.MeasureText(text, overlayFontSize))
	return int32(math32.Floor((w - tw) / 2))
}
