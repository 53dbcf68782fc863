package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func testImage(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func TestProcessOutputDimensions(t *testing.T) {
	data, err := Process(testImage(800, 600), Passport35x45, Config{})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	wantW, wantH := Passport35x45.PixelSize()
	if got := img.Bounds(); got.Dx() != wantW || got.Dy() != wantH {
		t.Errorf("output %dx%d, want %dx%d", got.Dx(), got.Dy(), wantW, wantH)
	}
}

func TestPixelSize(t *testing.T) {
	w, h := Passport35x45.PixelSize()
	// 35mm and 45mm at 300dpi.
	if w != 413 || h != 531 {
		t.Errorf("PixelSize = %dx%d, want 413x531", w, h)
	}
}

func TestCenterCrop(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		ratio float64
		want  image.Rectangle
	}{
		{"wide source, square target", 200, 100, 1.0, image.Rect(50, 0, 150, 100)},
		{"tall source, square target", 100, 200, 1.0, image.Rect(0, 50, 100, 150)},
		{"exact fit", 100, 100, 1.0, image.Rect(0, 0, 100, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := centerCrop(image.Rect(0, 0, tt.w, tt.h), tt.ratio)
			if got != tt.want {
				t.Errorf("centerCrop = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresetByName(t *testing.T) {
	p, err := PresetByName("visa-33x48")
	if err != nil || p != Visa33x48 {
		t.Errorf("PresetByName = %+v, %v", p, err)
	}
	if _, err := PresetByName("nope"); err == nil {
		t.Error("unknown preset must fail")
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	if _, err := Process([]byte("not an image"), Passport50x50, Config{}); err == nil {
		t.Error("garbage input must fail")
	}
}
