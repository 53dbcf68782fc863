// Package raster defines the page rasterizer capability: rendering document
// pages to pixel images for thumbnails and OCR.
package raster

import (
	"context"
	"image"
)

// PageSource is an open document whose pages can be rendered. Close releases
// the underlying raster surfaces; callers must close a source as soon as the
// last page they need has been rendered.
type PageSource interface {
	PageCount() int
	// Render rasterizes the 0-based page at the given resolution.
	Render(ctx context.Context, index int, dpi float64) (image.Image, error)
	Close() error
}

// Rasterizer opens raw document bytes for page rendering.
type Rasterizer interface {
	Open(ctx context.Context, data []byte) (PageSource, error)
}
