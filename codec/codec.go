// Package codec defines the document codec capability consumed by the page
// workspace engine: loading, page copying, rotation, numbering and saving.
// Concrete implementations live in subpackages.
package codec

import (
	"context"
	"errors"
)

// ErrUnreadableDocument indicates the codec could not parse the input, for
// example because it is corrupt or password protected.
var ErrUnreadableDocument = errors.New("document cannot be read")

// Document is a decoded document handle owned by a single session.
type Document interface {
	PageCount() int
	// PageRotation returns the cumulative rotation of a 0-based page in
	// degrees (0, 90, 180 or 270).
	PageRotation(index int) (int, error)
}

// Anchor names one of the six label placements on a page.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

func (a Anchor) String() string {
	switch a {
	case AnchorTopLeft:
		return "top-left"
	case AnchorTopCenter:
		return "top-center"
	case AnchorTopRight:
		return "top-right"
	case AnchorBottomLeft:
		return "bottom-left"
	case AnchorBottomCenter:
		return "bottom-center"
	case AnchorBottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// ParseAnchor resolves a textual anchor name ("bottom-center") to an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	for a := AnchorTopLeft; a <= AnchorBottomRight; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, errors.New("unknown anchor position: " + s)
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Numbering configures a "Page N of Total" pass over a document's full page
// sequence. The codec is responsible for width-aware placement at the anchor.
type Numbering struct {
	Anchor   Anchor
	FontSize float64
	Margin   float64
	Color    Color
}

// Codec provides document-level operations. Implementations must leave the
// source document untouched when an operation fails.
type Codec interface {
	// Open decodes raw bytes into a Document, failing with
	// ErrUnreadableDocument when the bytes cannot be parsed.
	Open(ctx context.Context, data []byte) (Document, error)
	// ExtractPages copies the given 0-based pages, in the given order, into
	// a new document.
	ExtractPages(ctx context.Context, doc Document, indices []int) (Document, error)
	// Merge concatenates all pages of each document, in argument order, into
	// a new document.
	Merge(ctx context.Context, docs []Document) (Document, error)
	// Rotate adds degrees to the existing rotation of each listed page. The
	// result is normalized modulo 360 by the page representation.
	Rotate(ctx context.Context, doc Document, indices []int, degrees int) error
	// StampPageNumbers draws "Page N of Total" on every page.
	StampPageNumbers(ctx context.Context, doc Document, spec Numbering) error
	// Save serializes the document to bytes.
	Save(ctx context.Context, doc Document) ([]byte, error)
}
