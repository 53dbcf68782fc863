// Package photo prepares ID photographs: it center-crops a source image to
// a preset's aspect ratio, resamples it to the preset's print resolution,
// and encodes a JPEG ready for printing.
package photo

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Preset is a target print format. Width and height are in millimetres;
// DPI sets the output pixel density.
type Preset struct {
	Name   string
	Width  int
	Height int
	DPI    int
}

// Standard presets. Dimensions follow the common national requirements.
var (
	Passport35x45 = Preset{Name: "passport-35x45", Width: 35, Height: 45, DPI: 300}
	Passport50x50 = Preset{Name: "passport-50x50", Width: 50, Height: 50, DPI: 300}
	Visa33x48     = Preset{Name: "visa-33x48", Width: 33, Height: 48, DPI: 300}
)

// Presets lists every built-in preset.
func Presets() []Preset {
	return []Preset{Passport35x45, Passport50x50, Visa33x48}
}

// PresetByName finds a preset, or returns an error naming the known ones.
func PresetByName(name string) (Preset, error) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q (known: %s, %s, %s)",
		name, Passport35x45.Name, Passport50x50.Name, Visa33x48.Name)
}

// PixelSize returns the output dimensions in pixels.
func (p Preset) PixelSize() (w, h int) {
	const mmPerInch = 25.4
	w = int(float64(p.Width) * float64(p.DPI) / mmPerInch)
	h = int(float64(p.Height) * float64(p.DPI) / mmPerInch)
	return w, h
}

// Config tunes the output encoding.
type Config struct {
	// Quality is the JPEG quality, 1-100. Zero means 92.
	Quality int
}

func (c Config) withDefaults() Config {
	if c.Quality <= 0 {
		c.Quality = 92
	}
	return c
}

// Process crops and resamples data to the preset and returns JPEG bytes.
func Process(data []byte, preset Preset, cfg Config) ([]byte, error) {
	cfg = cfg.withDefaults()

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	outW, outH := preset.PixelSize()
	cropped := centerCrop(src.Bounds(), float64(outW)/float64(outH))

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, cropped, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: cfg.Quality}); err != nil {
		return nil, fmt.Errorf("encoding photo: %w", err)
	}
	return buf.Bytes(), nil
}

// centerCrop returns the largest sub-rectangle of b with the given aspect
// ratio, centered.
func centerCrop(b image.Rectangle, ratio float64) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	cropW, cropH := w, h
	if float64(w)/float64(h) > ratio {
		cropW = int(float64(h) * ratio)
	} else {
		cropH = int(float64(w) / ratio)
	}
	x0 := b.Min.X + (w-cropW)/2
	y0 := b.Min.Y + (h-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}
