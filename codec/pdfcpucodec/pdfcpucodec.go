// Package pdfcpucodec implements the codec capability on top of pdfcpu.
//
// Every operation works on the document's serialized form and re-decodes the
// result, so a failed operation never leaves a half-modified document behind.
package pdfcpucodec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/wudi/pagekit/codec"
)

// Codec drives pdfcpu with a shared configuration.
type Codec struct {
	conf *model.Configuration
}

// New returns a codec with pdfcpu's default (relaxed) configuration.
func New() *Codec {
	return &Codec{conf: model.NewDefaultConfiguration()}
}

type document struct {
	data []byte
	ctx  *model.Context
}

func (d *document) PageCount() int { return d.ctx.PageCount }

func (d *document) PageRotation(index int) (int, error) {
	if index < 0 || index >= d.ctx.PageCount {
		return 0, fmt.Errorf("page index %d out of range", index)
	}
	_, _, attrs, err := d.ctx.PageDict(index+1, false)
	if err != nil {
		return 0, fmt.Errorf("page dict for page %d: %w", index+1, err)
	}
	rot := attrs.Rotate % 360
	if rot < 0 {
		rot += 360
	}
	return rot, nil
}

// Open decodes and validates a PDF. Corrupt or password-protected input is
// reported as codec.ErrUnreadableDocument.
func (c *Codec) Open(ctx context.Context, data []byte) (codec.Document, error) {
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), c.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrUnreadableDocument, err)
	}
	return &document{data: data, ctx: pdfCtx}, nil
}

func (c *Codec) reopen(data []byte) (*document, error) {
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), c.conf)
	if err != nil {
		return nil, fmt.Errorf("reload transformed document: %w", err)
	}
	return &document{data: data, ctx: pdfCtx}, nil
}

func pageStrings(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = strconv.Itoa(idx + 1)
	}
	return out
}

func (c *Codec) ExtractPages(ctx context.Context, doc codec.Document, indices []int) (codec.Document, error) {
	d, err := native(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := api.Trim(bytes.NewReader(d.data), &buf, pageStrings(indices), c.conf); err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}
	return c.reopen(buf.Bytes())
}

func (c *Codec) Merge(ctx context.Context, docs []codec.Document) (codec.Document, error) {
	readers := make([]io.ReadSeeker, 0, len(docs))
	for _, doc := range docs {
		d, err := native(doc)
		if err != nil {
			return nil, err
		}
		readers = append(readers, bytes.NewReader(d.data))
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, c.conf); err != nil {
		return nil, fmt.Errorf("merge documents: %w", err)
	}
	return c.reopen(buf.Bytes())
}

func (c *Codec) Rotate(ctx context.Context, doc codec.Document, indices []int, degrees int) error {
	d, err := native(doc)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	// pdfcpu adds the rotation to each page's current /Rotate entry.
	if err := api.Rotate(bytes.NewReader(d.data), &buf, degrees, pageStrings(indices), c.conf); err != nil {
		return fmt.Errorf("rotate pages: %w", err)
	}
	nd, err := c.reopen(buf.Bytes())
	if err != nil {
		return err
	}
	*d = *nd
	return nil
}

func (c *Codec) StampPageNumbers(ctx context.Context, doc codec.Document, spec codec.Numbering) error {
	d, err := native(doc)
	if err != nil {
		return err
	}
	wm, err := pdfcpu.ParseTextWatermarkDetails("Page %p of %P", stampDescription(spec), true, types.POINTS)
	if err != nil {
		return fmt.Errorf("build page number stamp: %w", err)
	}
	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(d.data), &buf, nil, wm, c.conf); err != nil {
		return fmt.Errorf("stamp page numbers: %w", err)
	}
	nd, err := c.reopen(buf.Bytes())
	if err != nil {
		return err
	}
	*d = *nd
	return nil
}

func (c *Codec) Save(ctx context.Context, doc codec.Document) ([]byte, error) {
	d, err := native(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), d.data...), nil
}

func native(doc codec.Document) (*document, error) {
	d, ok := doc.(*document)
	if !ok {
		return nil, fmt.Errorf("document %T was not opened by this codec", doc)
	}
	return d, nil
}

var positions = map[codec.Anchor]string{
	codec.AnchorTopLeft:      "tl",
	codec.AnchorTopCenter:    "tc",
	codec.AnchorTopRight:     "tr",
	codec.AnchorBottomLeft:   "bl",
	codec.AnchorBottomCenter: "bc",
	codec.AnchorBottomRight:  "br",
}

func stampDescription(spec codec.Numbering) string {
	size := spec.FontSize
	if size <= 0 {
		size = 10
	}
	margin := spec.Margin
	if margin <= 0 {
		margin = 12
	}
	dx := 0.0
	switch spec.Anchor {
	case codec.AnchorTopLeft, codec.AnchorBottomLeft:
		dx = margin
	case codec.AnchorTopRight, codec.AnchorBottomRight:
		dx = -margin
	}
	dy := margin
	switch spec.Anchor {
	case codec.AnchorTopLeft, codec.AnchorTopCenter, codec.AnchorTopRight:
		dy = -margin
	}
	col := fmt.Sprintf("#%02x%02x%02x",
		clampByte(spec.Color.R), clampByte(spec.Color.G), clampByte(spec.Color.B))
	return fmt.Sprintf("fontname:Helvetica, points:%g, pos:%s, off:%g %g, fillcol:%s, rot:0, scale:1 abs, opacity:1",
		size, positions[spec.Anchor], dx, dy, col)
}

func clampByte(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(v*255 + 0.5)
}
