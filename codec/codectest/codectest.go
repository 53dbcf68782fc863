// Package codectest provides a deterministic in-memory codec for exercising
// the engine without real PDF bytes. Documents are a magic header followed by
// a JSON page list, so saved artifacts can be decoded and inspected by tests.
package codectest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wudi/pagekit/codec"
)

// Magic prefixes every serialized test document.
const Magic = "%MEMDOC\n"

// Page is the visible state of one page in a test document.
type Page struct {
	Label    string `json:"label"`
	Rotation int    `json:"rotation"`
	Number   string `json:"number,omitempty"`
}

type body struct {
	Pages []Page `json:"pages"`
}

// ErrInjected is the failure returned by an operation listed in Codec.FailOps.
var ErrInjected = errors.New("injected codec failure")

// Codec implements codec.Codec over in-memory page lists. Operations named
// in FailOps ("open", "extract", "merge", "rotate", "stamp", "save") fail
// with ErrInjected, for exercising abort paths.
type Codec struct {
	FailOps map[string]bool

	// OpenCalls counts Open invocations, letting tests assert that
	// admission checks fire before any decode attempt.
	OpenCalls int
}

// New returns a codec with no injected failures.
func New() *Codec { return &Codec{} }

// FailOn returns a codec that fails the named operations.
func FailOn(ops ...string) *Codec {
	m := make(map[string]bool, len(ops))
	for _, op := range ops {
		m[op] = true
	}
	return &Codec{FailOps: m}
}

func (c *Codec) fails(op string) bool { return c.FailOps[op] }

type document struct {
	pages []Page
}

func (d *document) PageCount() int { return len(d.pages) }

func (d *document) PageRotation(index int) (int, error) {
	if index < 0 || index >= len(d.pages) {
		return 0, fmt.Errorf("page index %d out of range", index)
	}
	return d.pages[index].Rotation, nil
}

// Pages exposes the page list of a document produced by this codec.
func Pages(doc codec.Document) []Page {
	d, ok := doc.(*document)
	if !ok {
		return nil
	}
	return append([]Page(nil), d.pages...)
}

// MustMarshal serializes pages into the codec's wire form.
func MustMarshal(pages ...Page) []byte {
	data, err := json.Marshal(body{Pages: pages})
	if err != nil {
		panic(err)
	}
	return append([]byte(Magic), data...)
}

// NewDoc builds document bytes with one page per label and zero rotation.
func NewDoc(labels ...string) []byte {
	pages := make([]Page, len(labels))
	for i, l := range labels {
		pages[i] = Page{Label: l}
	}
	return MustMarshal(pages...)
}

// Decode parses serialized document bytes back into pages.
func Decode(data []byte) ([]Page, error) {
	if len(data) < len(Magic) || string(data[:len(Magic)]) != Magic {
		return nil, errors.New("missing test document magic")
	}
	var b body
	if err := json.Unmarshal(data[len(Magic):], &b); err != nil {
		return nil, err
	}
	return b.Pages, nil
}

func (c *Codec) Open(ctx context.Context, data []byte) (codec.Document, error) {
	c.OpenCalls++
	if c.fails("open") {
		return nil, fmt.Errorf("%w: %w", codec.ErrUnreadableDocument, ErrInjected)
	}
	pages, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrUnreadableDocument, err)
	}
	return &document{pages: pages}, nil
}

func (c *Codec) ExtractPages(ctx context.Context, doc codec.Document, indices []int) (codec.Document, error) {
	if c.fails("extract") {
		return nil, ErrInjected
	}
	d := doc.(*document)
	out := make([]Page, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(d.pages) {
			return nil, fmt.Errorf("page index %d out of range", idx)
		}
		out = append(out, d.pages[idx])
	}
	return &document{pages: out}, nil
}

func (c *Codec) Merge(ctx context.Context, docs []codec.Document) (codec.Document, error) {
	if c.fails("merge") {
		return nil, ErrInjected
	}
	var out []Page
	for _, doc := range docs {
		out = append(out, doc.(*document).pages...)
	}
	return &document{pages: out}, nil
}

func (c *Codec) Rotate(ctx context.Context, doc codec.Document, indices []int, degrees int) error {
	if c.fails("rotate") {
		return ErrInjected
	}
	d := doc.(*document)
	for _, idx := range indices {
		if idx < 0 || idx >= len(d.pages) {
			return fmt.Errorf("page index %d out of range", idx)
		}
		r := (d.pages[idx].Rotation + degrees) % 360
		if r < 0 {
			r += 360
		}
		d.pages[idx].Rotation = r
	}
	return nil
}

func (c *Codec) StampPageNumbers(ctx context.Context, doc codec.Document, spec codec.Numbering) error {
	if c.fails("stamp") {
		return ErrInjected
	}
	d := doc.(*document)
	total := len(d.pages)
	for i := range d.pages {
		d.pages[i].Number = fmt.Sprintf("Page %d of %d", i+1, total)
	}
	return nil
}

func (c *Codec) Save(ctx context.Context, doc codec.Document) ([]byte, error) {
	if c.fails("save") {
		return nil, ErrInjected
	}
	return MustMarshal(doc.(*document).pages...), nil
}
