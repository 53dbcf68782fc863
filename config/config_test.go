package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loader.MaxFileSize != 100<<20 || cfg.OCR.Languages[0] != "eng" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pagekit.yaml")
	body := `
loader:
  max_file_size: 1048576
  thumbnail_limit: 10
ocr:
  languages: [deu, eng]
genai:
  model: local-test
  base_url: http://127.0.0.1:8080/v1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loader.MaxFileSize != 1<<20 {
		t.Errorf("MaxFileSize = %d", cfg.Loader.MaxFileSize)
	}
	if cfg.Loader.ThumbnailLimit != 10 {
		t.Errorf("ThumbnailLimit = %d", cfg.Loader.ThumbnailLimit)
	}
	if len(cfg.OCR.Languages) != 2 || cfg.OCR.Languages[0] != "deu" {
		t.Errorf("Languages = %v", cfg.OCR.Languages)
	}
	if cfg.GenAI.Model != "local-test" {
		t.Errorf("Model = %q", cfg.GenAI.Model)
	}
	// Untouched sections keep their defaults.
	if cfg.Numbering.Anchor != "bottom-center" {
		t.Errorf("Anchor = %q", cfg.Numbering.Anchor)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("loader: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML must fail")
	}
}

func TestGenAIToken(t *testing.T) {
	t.Setenv("PAGEKIT_TEST_TOKEN", "secret")
	g := GenAIConfig{TokenEnv: "PAGEKIT_TEST_TOKEN"}
	if g.Token() != "secret" {
		t.Errorf("Token = %q", g.Token())
	}
}
