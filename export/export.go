// Package export turns transform outputs into user-retrievable files: a
// single named buffer directly, several packaged into one zip archive.
package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wudi/pagekit/observability"
)

// Artifact is one named output buffer.
type Artifact struct {
	Name string
	Data []byte
}

// DeriveName builds an output file name from a source name, an operation
// suffix and a timestamp: "report.pdf" + "merged" -> "report_merged_<ts>.ext".
// The timestamp avoids silent-overwrite confusion; uniqueness is convention,
// not a guarantee.
func DeriveName(sourceName, suffix, ext string, t time.Time) string {
	base := strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName))
	if base == "" || base == "." {
		base = "document"
	}
	return fmt.Sprintf("%s_%s_%s.%s", base, suffix, t.Format("20060102-150405"), ext)
}

// Zip packages named buffers into a single zip archive.
func Zip(artifacts []Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range artifacts {
		w, err := zw.Create(a.Name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("add %q to archive: %w", a.Name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write %q to archive: %w", a.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Sink writes artifacts to a directory.
type Sink struct {
	Dir string
	// Now stamps archive names; nil means time.Now.
	Now    func() time.Time
	Logger observability.Logger
}

// NewSink returns a sink writing into dir.
func NewSink(dir string) *Sink {
	return &Sink{Dir: dir, Logger: observability.NopLogger{}}
}

func (s *Sink) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Deliver writes the artifacts and returns the path produced. A single
// artifact becomes a direct file; several are packaged into one zip named
// after archiveBase and the operation suffix.
func (s *Sink) Deliver(artifacts []Artifact, archiveBase, suffix string) (string, error) {
	logger := s.Logger
	if logger == nil {
		logger = observability.NopLogger{}
	}
	switch len(artifacts) {
	case 0:
		return "", errors.New("nothing to deliver")
	case 1:
		path := filepath.Join(s.Dir, artifacts[0].Name)
		if err := os.WriteFile(path, artifacts[0].Data, 0o644); err != nil {
			return "", fmt.Errorf("write %q: %w", path, err)
		}
		logger.Info("artifact written", observability.String("path", path),
			observability.Int64("size", int64(len(artifacts[0].Data))))
		return path, nil
	}

	data, err := Zip(artifacts)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, DeriveName(archiveBase, suffix, "zip", s.now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", path, err)
	}
	logger.Info("archive written", observability.String("path", path),
		observability.Int("artifacts", len(artifacts)),
		observability.Int64("size", int64(len(data))))
	return path, nil
}
