// Package config holds the tool configuration, loaded from an optional YAML
// file with sane defaults for every field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full tool configuration.
type Config struct {
	Loader    LoaderConfig    `yaml:"loader"`
	Numbering NumberingConfig `yaml:"numbering"`
	OCR       OCRConfig       `yaml:"ocr"`
	GenAI     GenAIConfig     `yaml:"genai"`
	Export    ExportConfig    `yaml:"export"`
}

// LoaderConfig bounds document admission and thumbnail generation.
type LoaderConfig struct {
	// MaxFileSize is the admission ceiling in bytes for both the open
	// document and merge-queue entries.
	MaxFileSize int64 `yaml:"max_file_size"`
	// ThumbnailLimit caps how many pages get thumbnails.
	ThumbnailLimit int `yaml:"thumbnail_limit"`
	// ThumbnailWidth is the thumbnail width in pixels.
	ThumbnailWidth int `yaml:"thumbnail_width"`
	// ThumbnailQuality is the thumbnail JPEG quality, 1-100.
	ThumbnailQuality int `yaml:"thumbnail_quality"`
}

// NumberingConfig sets the defaults for merge page numbering.
type NumberingConfig struct {
	Anchor   string  `yaml:"anchor"`
	FontSize float64 `yaml:"font_size"`
	Margin   float64 `yaml:"margin"`
}

// OCRConfig sets text-recognition defaults.
type OCRConfig struct {
	Languages []string `yaml:"languages"`
	DPI       int      `yaml:"dpi"`
}

// GenAIConfig points at the remote generation service. The token is read
// from TokenEnv rather than stored in the file.
type GenAIConfig struct {
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	TokenEnv string `yaml:"token_env"`
}

// Token resolves the service token from the environment.
func (g GenAIConfig) Token() string { return os.Getenv(g.TokenEnv) }

// ExportConfig controls where results are written.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Loader: LoaderConfig{
			MaxFileSize:      100 << 20,
			ThumbnailLimit:   50,
			ThumbnailWidth:   220,
			ThumbnailQuality: 70,
		},
		Numbering: NumberingConfig{
			Anchor:   "bottom-center",
			FontSize: 10,
			Margin:   24,
		},
		OCR: OCRConfig{
			Languages: []string{"eng"},
			DPI:       300,
		},
		GenAI: GenAIConfig{
			Model:    "gpt-4o-mini",
			TokenEnv: "OPENAI_API_KEY",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error; the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
