package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/wudi/pagekit/codec"
	"github.com/wudi/pagekit/codec/codectest"
	"github.com/wudi/pagekit/raster/rastertest"
)

func testConfig() Config {
	return Config{
		MagicPrefix:  codectest.Magic,
		ThumbnailDPI: 40,
	}
}

func TestOpen(t *testing.T) {
	cc := codectest.New()
	rr := rastertest.New(3)
	l := New(cc, rr, testConfig())

	var pcts []int
	data := codectest.NewDoc("a", "b", "c")
	src, err := l.Open(context.Background(), "doc.pdf", data, func(p int) { pcts = append(pcts, p) })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if src.PageCount != 3 || len(src.Thumbnails) != 3 {
		t.Errorf("pages=%d thumbnails=%d, want 3/3", src.PageCount, len(src.Thumbnails))
	}
	for i, th := range src.Thumbnails {
		if th.Index != i {
			t.Errorf("thumbnail %d has index %d", i, th.Index)
		}
		if th.Width != 220 || len(th.JPEG) == 0 {
			t.Errorf("thumbnail %d: width=%d jpeg=%d bytes", i, th.Width, len(th.JPEG))
		}
	}
	assertMonotone(t, pcts)
	if len(rr.OpenSources) != 1 || !rr.OpenSources[0].Closed {
		t.Error("raster source must be closed after thumbnailing")
	}
}

func TestOpenTooLarge(t *testing.T) {
	cc := codectest.New()
	cfg := testConfig()
	cfg.MaxFileSize = 8
	l := New(cc, rastertest.New(1), cfg)

	_, err := l.Open(context.Background(), "big.pdf", codectest.NewDoc("a"), nil)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("err = %v, want ErrFileTooLarge", err)
	}
	if cc.OpenCalls != 0 {
		t.Errorf("codec must not be invoked for oversized files, got %d calls", cc.OpenCalls)
	}
}

func TestOpenWrongMagic(t *testing.T) {
	cc := codectest.New()
	l := New(cc, rastertest.New(1), testConfig())

	_, err := l.Open(context.Background(), "junk.pdf", []byte("not a document"), nil)
	if !errors.Is(err, codec.ErrUnreadableDocument) {
		t.Fatalf("err = %v, want ErrUnreadableDocument", err)
	}
	if cc.OpenCalls != 0 {
		t.Errorf("codec must not be invoked when the magic prefix is missing")
	}
}

func TestOpenCorrupt(t *testing.T) {
	l := New(codectest.New(), rastertest.New(1), testConfig())

	data := append([]byte(codectest.Magic), []byte("{broken")...)
	_, err := l.Open(context.Background(), "corrupt.pdf", data, nil)
	if !errors.Is(err, codec.ErrUnreadableDocument) {
		t.Fatalf("err = %v, want ErrUnreadableDocument", err)
	}
}

func TestThumbnailLimit(t *testing.T) {
	labels := make([]string, 80)
	for i := range labels {
		labels[i] = "p"
	}
	rr := rastertest.New(80)
	cfg := testConfig()
	cfg.ThumbnailLimit = 50
	l := New(codectest.New(), rr, cfg)

	var pcts []int
	src, err := l.Open(context.Background(), "long.pdf", codectest.NewDoc(labels...), func(p int) { pcts = append(pcts, p) })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(src.Thumbnails) != 50 {
		t.Errorf("thumbnails=%d, want cap of 50", len(src.Thumbnails))
	}
	if len(rr.RenderCalls) != 50 {
		t.Errorf("rendered %d pages, want 50", len(rr.RenderCalls))
	}
	assertMonotone(t, pcts)
}

func TestRenderFailureAborts(t *testing.T) {
	rr := rastertest.New(3)
	rr.FailRender = map[int]bool{1: true}
	l := New(codectest.New(), rr, testConfig())

	_, err := l.Open(context.Background(), "doc.pdf", codectest.NewDoc("a", "b", "c"), nil)
	if !errors.Is(err, rastertest.ErrInjected) {
		t.Fatalf("err = %v, want injected render failure", err)
	}
	if !rr.OpenSources[0].Closed {
		t.Error("raster source must be closed on failure")
	}
}

func TestNoRasterizer(t *testing.T) {
	l := New(codectest.New(), nil, testConfig())
	src, err := l.Open(context.Background(), "doc.pdf", codectest.NewDoc("a", "b"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(src.Thumbnails) != 0 {
		t.Errorf("expected no thumbnails without a rasterizer, got %d", len(src.Thumbnails))
	}
}

func assertMonotone(t *testing.T, pcts []int) {
	t.Helper()
	last := -1
	for _, p := range pcts {
		if p < last {
			t.Fatalf("progress regressed: %v", pcts)
		}
		if p > 100 {
			t.Fatalf("progress exceeded 100: %v", pcts)
		}
		last = p
	}
	if last != 100 {
		t.Fatalf("progress must end at 100, got %v", pcts)
	}
}
