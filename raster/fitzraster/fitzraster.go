// Package fitzraster implements the rasterizer capability with MuPDF via
// go-fitz.
package fitzraster

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"github.com/wudi/pagekit/raster"
)

// Rasterizer opens documents with MuPDF.
type Rasterizer struct{}

// New returns a MuPDF-backed rasterizer.
func New() *Rasterizer { return &Rasterizer{} }

type source struct {
	doc *fitz.Document
}

func (r *Rasterizer) Open(ctx context.Context, data []byte) (raster.PageSource, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document for rendering: %w", err)
	}
	return &source{doc: doc}, nil
}

func (s *source) PageCount() int { return s.doc.NumPage() }

func (s *source) Render(ctx context.Context, index int, dpi float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if index < 0 || index >= s.doc.NumPage() {
		return nil, fmt.Errorf("page index %d out of range", index)
	}
	img, err := s.doc.ImageDPI(index, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", index+1, err)
	}
	return img, nil
}

func (s *source) Close() error { return s.doc.Close() }
