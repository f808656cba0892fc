package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"math"
	"path/filepath"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/transform"
	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
)

// ErrNoAssets is returned by Load when asked for an empty set.
var ErrNoAssets = errors.New("assets: no assets requested")

// Asset is a decoded image and the name it was loaded from.
type Asset struct {
	Name  string
	Image image.Image
}

// Width returns the image width in pixels.
func (a Asset) Width() int { return a.Image.Bounds().Dx() }

// Height returns the image height in pixels.
func (a Asset) Height() int { return a.Image.Bounds().Dy() }

// Dir opens dir on the local disk as a read-only filesystem rooted there.
// Relative paths are resolved against the working directory.
func Dir(dir string) (hackpadfs.FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	root := osfs.NewFS()
	rel, err := root.FromOSPath(abs)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	sub, err := root.Sub(rel)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return sub, nil
}

// Load decodes every named file from fsys concurrently and returns once all of them are
// ready, in the order of names. Nothing is returned unless every asset loaded: the first
// failure cancels the rest and is reported.
func Load(ctx context.Context, fsys fs.FS, names []string) ([]Asset, error) {
	if len(names) == 0 {
		return nil, ErrNoAssets
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]Asset, len(names))
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := decode(ctx, fsys, name)
			if err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
				return
			}
			out[i] = Asset{Name: name, Image: img}
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func decode(ctx context.Context, fsys fs.FS, name string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assets: %s: %w", name, err)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("assets: %s has empty bounds %v", name, b)
	}
	return img, nil
}

// Scale resizes every asset by factor in place. Factor 1 is a no-op; each side is kept at least 1 px.
func Scale(list []Asset, factor float64) {
	if factor == 1 || factor <= 0 {
		return
	}
	for i, a := range list {
		w := max(1, int(math.Round(float64(a.Width())*factor)))
		h := max(1, int(math.Round(float64(a.Height())*factor)))
		list[i].Image = transform.Resize(a.Image, w, h, transform.Linear)
	}
}
