// Package rastertest provides an in-memory rasterizer for engine tests.
package rastertest

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/wudi/pagekit/raster"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("injected rasterizer failure")

// Rasterizer produces solid-color pages of a fixed count regardless of the
// input bytes.
type Rasterizer struct {
	Pages      int
	FailOpen   bool
	FailRender map[int]bool

	// RenderCalls records the order pages were rendered in.
	RenderCalls []int
	// OpenSources tracks sources handed out so tests can assert Close.
	OpenSources []*Source
}

// New returns a rasterizer pretending every document has pages pages.
func New(pages int) *Rasterizer { return &Rasterizer{Pages: pages} }

// Source is a fake page source.
type Source struct {
	r      *Rasterizer
	Closed bool
}

func (r *Rasterizer) Open(ctx context.Context, data []byte) (raster.PageSource, error) {
	if r.FailOpen {
		return nil, ErrInjected
	}
	s := &Source{r: r}
	r.OpenSources = append(r.OpenSources, s)
	return s, nil
}

func (s *Source) PageCount() int { return s.r.Pages }

func (s *Source) Render(ctx context.Context, index int, dpi float64) (image.Image, error) {
	if s.r.FailRender[index] {
		return nil, ErrInjected
	}
	s.r.RenderCalls = append(s.r.RenderCalls, index)
	w := int(dpi)
	if w < 1 {
		w = 1
	}
	h := w * 3 / 2
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{R: uint8(index * 16), G: 128, B: 255, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

func (s *Source) Close() error {
	s.Closed = true
	return nil
}
