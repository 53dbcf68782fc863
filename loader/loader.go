// Package loader opens source documents: admission checks, decoding through
// the document codec, and bounded thumbnail generation through the page
// rasterizer.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/wudi/pagekit/codec"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/raster"
	"github.com/wudi/pagekit/sizefmt"
)

// ErrFileTooLarge is returned when the input exceeds the admission ceiling.
// The check runs before any decode attempt.
var ErrFileTooLarge = errors.New("file exceeds the size limit")

// Config bounds loading work. Zero values take the defaults below.
type Config struct {
	// MaxFileSize is the admission ceiling in bytes. Default 100 MB.
	MaxFileSize int64
	// ThumbnailLimit caps how many pages get thumbnails. Default 50.
	ThumbnailLimit int
	// ThumbnailWidth is the pixel width thumbnails are scaled to. Default 220.
	ThumbnailWidth int
	// ThumbnailQuality is the JPEG quality for thumbnails. Default 70.
	ThumbnailQuality int
	// ThumbnailDPI is the resolution pages are rendered at before scaling.
	// Default 72.
	ThumbnailDPI float64
	// MagicPrefix is the expected leading bytes of an admissible file.
	// Default "%PDF-".
	MagicPrefix string

	Logger observability.Logger
}

func (c Config) withDefaults() Config {
	if c.MaxFileSize == 0 {
		c.MaxFileSize = 100 << 20
	}
	if c.ThumbnailLimit == 0 {
		c.ThumbnailLimit = 50
	}
	if c.ThumbnailWidth == 0 {
		c.ThumbnailWidth = 220
	}
	if c.ThumbnailQuality == 0 {
		c.ThumbnailQuality = 70
	}
	if c.ThumbnailDPI == 0 {
		c.ThumbnailDPI = 72
	}
	if c.MagicPrefix == "" {
		c.MagicPrefix = "%PDF-"
	}
	if c.Logger == nil {
		c.Logger = observability.NopLogger{}
	}
	return c
}

// Thumbnail is a low-resolution JPEG preview of one page. Thumbnail i always
// previews page i of the source.
type Thumbnail struct {
	Index  int
	JPEG   []byte
	Width  int
	Height int
}

// SourceDocument is an opened document together with its previews. It is
// owned by one session and replaced wholesale on the next load.
type SourceDocument struct {
	Name       string
	Size       int64
	Data       []byte
	PageCount  int
	Doc        codec.Document
	Thumbnails []Thumbnail
}

// Loader opens documents via a codec and a rasterizer.
type Loader struct {
	cfg    Config
	codec  codec.Codec
	raster raster.Rasterizer
}

// New builds a loader. The rasterizer may be nil, in which case no
// thumbnails are generated.
func New(c codec.Codec, r raster.Rasterizer, cfg Config) *Loader {
	return &Loader{cfg: cfg.withDefaults(), codec: c, raster: r}
}

// Open admits, decodes and thumbnails a candidate file. progress, if non-nil,
// receives percentages from 0 to 100, monotonically. On any failure nothing
// of the candidate is retained.
func (l *Loader) Open(ctx context.Context, name string, data []byte, progress func(pct int)) (*SourceDocument, error) {
	if progress == nil {
		progress = func(int) {}
	}
	size := int64(len(data))
	if size > l.cfg.MaxFileSize {
		return nil, fmt.Errorf("%q is %s: %w (limit %s)",
			name, sizefmt.Format(size), ErrFileTooLarge, sizefmt.Format(l.cfg.MaxFileSize))
	}
	if !strings.HasPrefix(string(data[:min(len(data), len(l.cfg.MagicPrefix))]), l.cfg.MagicPrefix) {
		return nil, fmt.Errorf("%q: %w", name, codec.ErrUnreadableDocument)
	}

	doc, err := l.codec.Open(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", name, err)
	}
	src := &SourceDocument{
		Name:      name,
		Size:      size,
		Data:      data,
		PageCount: doc.PageCount(),
		Doc:       doc,
	}

	if l.raster != nil {
		src.Thumbnails, err = l.thumbnails(ctx, data, src.PageCount, progress)
		if err != nil {
			return nil, fmt.Errorf("thumbnails for %q: %w", name, err)
		}
	}
	progress(100)

	l.cfg.Logger.Info("document loaded",
		observability.String("name", name),
		observability.Int64("size", size),
		observability.Int("pages", src.PageCount),
		observability.Int("thumbnails", len(src.Thumbnails)))
	return src, nil
}

func (l *Loader) thumbnails(ctx context.Context, data []byte, pageCount int, progress func(int)) ([]Thumbnail, error) {
	count := pageCount
	if count > l.cfg.ThumbnailLimit {
		count = l.cfg.ThumbnailLimit
	}
	if count == 0 {
		return nil, nil
	}

	src, err := l.raster.Open(ctx, data)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	thumbs := make([]Thumbnail, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := src.Render(ctx, i, l.cfg.ThumbnailDPI)
		if err != nil {
			return nil, err
		}
		th, err := l.encodeThumbnail(i, img)
		if err != nil {
			return nil, err
		}
		thumbs = append(thumbs, th)
		progress((i + 1) * 100 / count)
	}
	return thumbs, nil
}

func (l *Loader) encodeThumbnail(index int, img image.Image) (Thumbnail, error) {
	b := img.Bounds()
	w := l.cfg.ThumbnailWidth
	h := b.Dy() * w / b.Dx()
	if h < 1 {
		h = 1
	}
	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: l.cfg.ThumbnailQuality}); err != nil {
		return Thumbnail{}, fmt.Errorf("encode thumbnail %d: %w", index, err)
	}
	return Thumbnail{Index: index, JPEG: buf.Bytes(), Width: w, Height: h}, nil
}
