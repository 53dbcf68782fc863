// Package pipeline applies page-level and document-level transforms to
// source documents, producing export artifacts with phase-weighted progress.
// Each tool of the suite is a Job configuration, not a separate
// implementation.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/wudi/pagekit/codec"
)

// Kind selects the transform shape of a job.
type Kind int

const (
	// KindExtract copies the selected pages into one new document.
	KindExtract Kind = iota
	// KindBurst produces one single-page document per page of the source.
	KindBurst
	// KindConcatenate appends all pages of every source, in order, into one
	// document, optionally followed by a page-numbering pass.
	KindConcatenate
	// KindRotate adds a fixed angle to each selected page's rotation.
	KindRotate
	// KindRecognize rasterizes the selected pages and runs OCR over them.
	KindRecognize
)

func (k Kind) String() string {
	switch k {
	case KindExtract:
		return "extract"
	case KindBurst:
		return "burst"
	case KindConcatenate:
		return "concatenate"
	case KindRotate:
		return "rotate"
	case KindRecognize:
		return "recognize"
	}
	return "unknown"
}

// ErrEmptySelection is returned when a transform needing pages resolves an
// empty selection.
var ErrEmptySelection = errors.New("no pages selected")

// ErrTooFewDocuments is returned when a concatenate job has fewer than two
// sources.
var ErrTooFewDocuments = errors.New("at least two documents are required")

// TransformError reports a failed job together with the stage that failed.
// No partial artifacts are ever produced alongside one.
type TransformError struct {
	Stage string
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform failed during %s: %v", e.Stage, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// Source is one input document for a job.
type Source struct {
	Name string
	Data []byte
}

// NumberingSpec configures the optional page-numbering pass of a
// concatenate job. Labels run 1..Total over the merged sequence.
type NumberingSpec struct {
	Enabled  bool
	Anchor   codec.Anchor
	FontSize float64
	Margin   float64
	Color    codec.Color
}

// RotationSpec configures a rotate job. Degrees must be a non-zero multiple
// of 90; the angle is added to each page's existing rotation.
type RotationSpec struct {
	Degrees int
}

// OCRSpec configures a recognize job.
type OCRSpec struct {
	Languages []string
	DPI       float64
}

// Job is one transient unit of transform work.
type Job struct {
	Kind      Kind
	Sources   []Source
	Selection []int
	Numbering NumberingSpec
	Rotation  RotationSpec
	OCR       OCRSpec
}
