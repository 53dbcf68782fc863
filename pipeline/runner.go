package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wudi/pagekit/codec"
	"github.com/wudi/pagekit/export"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/ocr"
	"github.com/wudi/pagekit/raster"
)

const defaultOCRDPI = 300

// Runner executes jobs against the configured capabilities. A runner is
// stateless across jobs and may be shared by tools.
type Runner struct {
	codec     codec.Codec
	raster    raster.Rasterizer
	ocrEngine ocr.Engine
	logger    observability.Logger
}

// NewRunner builds a runner over the given codec.
func NewRunner(c codec.Codec) *Runner {
	return &Runner{codec: c, logger: observability.NopLogger{}}
}

// WithRaster supplies the rasterizer needed by recognize jobs.
func (r *Runner) WithRaster(ra raster.Rasterizer) *Runner {
	r.raster = ra
	return r
}

// WithOCR supplies the recognition engine for recognize jobs.
func (r *Runner) WithOCR(e ocr.Engine) *Runner {
	r.ocrEngine = e
	return r
}

// WithLogger replaces the no-op logger.
func (r *Runner) WithLogger(l observability.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// Run executes one job. progress, if non-nil, receives monotone percentages
// ending at exactly 100 on success. On failure no artifacts are returned and
// the error names the failing stage.
func (r *Runner) Run(ctx context.Context, job Job, progress func(int)) ([]export.Artifact, error) {
	var (
		artifacts []export.Artifact
		err       error
	)
	switch job.Kind {
	case KindExtract:
		artifacts, err = r.runExtract(ctx, job, progress)
	case KindBurst:
		artifacts, err = r.runBurst(ctx, job, progress)
	case KindConcatenate:
		artifacts, err = r.runConcatenate(ctx, job, progress)
	case KindRotate:
		artifacts, err = r.runRotate(ctx, job, progress)
	case KindRecognize:
		artifacts, err = r.runRecognize(ctx, job, progress)
	default:
		err = fmt.Errorf("unknown transform kind %d", job.Kind)
	}
	if err != nil {
		r.logger.Error("transform failed",
			observability.String("kind", job.Kind.String()),
			observability.Error("err", err))
		return nil, err
	}
	r.logger.Info("transform complete",
		observability.String("kind", job.Kind.String()),
		observability.Int("artifacts", len(artifacts)))
	return artifacts, nil
}

func stageErr(stage string, err error) error {
	return &TransformError{Stage: stage, Err: err}
}

func singleSource(job Job) (Source, error) {
	if len(job.Sources) != 1 {
		return Source{}, fmt.Errorf("%s needs exactly one source, got %d", job.Kind, len(job.Sources))
	}
	return job.Sources[0], nil
}

// resolvedSelection returns the selection sorted ascending and deduplicated.
// Output order never depends on selection insertion order.
func resolvedSelection(job Job) []int {
	seen := make(map[int]struct{}, len(job.Selection))
	out := make([]int, 0, len(job.Selection))
	for _, i := range job.Selection {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func baseName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		return "document"
	}
	return base
}

func (r *Runner) runExtract(ctx context.Context, job Job, progress func(int)) ([]export.Artifact, error) {
	src, err := singleSource(job)
	if err != nil {
		return nil, stageErr("validate", err)
	}
	indices := resolvedSelection(job)
	if len(indices) == 0 {
		return nil, ErrEmptySelection
	}
	tr := NewTracker(progress, Phase{"load", 1}, Phase{"extract", 2}, Phase{"save", 1})

	doc, err := r.codec.Open(ctx, src.Data)
	if err != nil {
		return nil, stageErr("load", err)
	}
	tr.FinishPhase(0)

	out, err := r.codec.ExtractPages(ctx, doc, indices)
	if err != nil {
		return nil, stageErr("extract", err)
	}
	tr.FinishPhase(1)

	data, err := r.codec.Save(ctx, out)
	if err != nil {
		return nil, stageErr("save", err)
	}
	tr.Finish()
	return []export.Artifact{{Name: baseName(src.Name) + "_extracted.pdf", Data: data}}, nil
}

func (r *Runner) runBurst(ctx context.Context, job Job, progress func(int)) ([]export.Artifact, error) {
	src, err := singleSource(job)
	if err != nil {
		return nil, stageErr("validate", err)
	}
	tr := NewTracker(progress, Phase{"load", 1}, Phase{"pages", 9})

	doc, err := r.codec.Open(ctx, src.Data)
	if err != nil {
		return nil, stageErr("load", err)
	}
	tr.FinishPhase(0)

	total := doc.PageCount()
	artifacts := make([]export.Artifact, 0, total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, stageErr("burst", err)
		}
		page, err := r.codec.ExtractPages(ctx, doc, []int{i})
		if err != nil {
			return nil, stageErr("burst", err)
		}
		data, err := r.codec.Save(ctx, page)
		if err != nil {
			return nil, stageErr("save", err)
		}
		artifacts = append(artifacts, export.Artifact{
			Name: fmt.Sprintf("%s_page_%03d.pdf", baseName(src.Name), i+1),
			Data: data,
		})
		tr.Step(1, i+1, total)
	}
	tr.Finish()
	return artifacts, nil
}

func (r *Runner) runConcatenate(ctx context.Context, job Job, progress func(int)) ([]export.Artifact, error) {
	if len(job.Sources) < 2 {
		return nil, ErrTooFewDocuments
	}
	// Merging and numbering each get a fixed half of the budget so progress
	// stays monotone across the phase switch.
	phases := []Phase{{"merge", 1}}
	if job.Numbering.Enabled {
		phases = append(phases, Phase{"number", 1})
	}
	tr := NewTracker(progress, phases...)

	docs := make([]codec.Document, 0, len(job.Sources))
	steps := len(job.Sources) + 1
	for i, src := range job.Sources {
		if err := ctx.Err(); err != nil {
			return nil, stageErr("load", err)
		}
		doc, err := r.codec.Open(ctx, src.Data)
		if err != nil {
			return nil, stageErr("load", fmt.Errorf("%s: %w", src.Name, err))
		}
		docs = append(docs, doc)
		tr.Step(0, i+1, steps)
	}

	merged, err := r.codec.Merge(ctx, docs)
	if err != nil {
		return nil, stageErr("merge", err)
	}
	tr.FinishPhase(0)

	if job.Numbering.Enabled {
		spec := codec.Numbering{
			Anchor:   job.Numbering.Anchor,
			FontSize: job.Numbering.FontSize,
			Margin:   job.Numbering.Margin,
			Color:    job.Numbering.Color,
		}
		if err := r.codec.StampPageNumbers(ctx, merged, spec); err != nil {
			return nil, stageErr("number", err)
		}
		tr.FinishPhase(1)
	}

	data, err := r.codec.Save(ctx, merged)
	if err != nil {
		return nil, stageErr("save", err)
	}
	tr.Finish()
	return []export.Artifact{{Name: baseName(job.Sources[0].Name) + "_merged.pdf", Data: data}}, nil
}

func (r *Runner) runRotate(ctx context.Context, job Job, progress func(int)) ([]export.Artifact, error) {
	src, err := singleSource(job)
	if err != nil {
		return nil, stageErr("validate", err)
	}
	deg := job.Rotation.Degrees
	if deg%90 != 0 || deg%360 == 0 {
		return nil, stageErr("validate", fmt.Errorf("unsupported rotation angle %d", deg))
	}
	indices := resolvedSelection(job)
	if len(indices) == 0 {
		return nil, ErrEmptySelection
	}
	tr := NewTracker(progress, Phase{"load", 1}, Phase{"rotate", 2}, Phase{"save", 1})

	doc, err := r.codec.Open(ctx, src.Data)
	if err != nil {
		return nil, stageErr("load", err)
	}
	tr.FinishPhase(0)

	if err := r.codec.Rotate(ctx, doc, indices, deg); err != nil {
		return nil, stageErr("rotate", err)
	}
	tr.FinishPhase(1)

	data, err := r.codec.Save(ctx, doc)
	if err != nil {
		return nil, stageErr("save", err)
	}
	tr.Finish()
	return []export.Artifact{{Name: baseName(src.Name) + "_rotated.pdf", Data: data}}, nil
}

func (r *Runner) runRecognize(ctx context.Context, job Job, progress func(int)) ([]export.Artifact, error) {
	src, err := singleSource(job)
	if err != nil {
		return nil, stageErr("validate", err)
	}
	if r.raster == nil {
		return nil, stageErr("validate", errors.New("no rasterizer configured"))
	}
	engine := r.ocrEngine
	if engine == nil {
		engine = ocr.DefaultEngine()
	}
	indices := resolvedSelection(job)
	if len(indices) == 0 {
		return nil, ErrEmptySelection
	}
	dpi := job.OCR.DPI
	if dpi <= 0 {
		dpi = defaultOCRDPI
	}
	tr := NewTracker(progress, Phase{"load", 1}, Phase{"pages", 9})

	pages, err := r.raster.Open(ctx, src.Data)
	if err != nil {
		return nil, stageErr("load", err)
	}
	defer pages.Close()
	tr.FinishPhase(0)

	var text strings.Builder
	for n, idx := range indices {
		if err := ctx.Err(); err != nil {
			return nil, stageErr("recognize", err)
		}
		if idx < 0 || idx >= pages.PageCount() {
			return nil, stageErr("render", fmt.Errorf("page index %d out of range", idx))
		}
		img, err := pages.Render(ctx, idx, dpi)
		if err != nil {
			return nil, stageErr("render", err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, stageErr("render", err)
		}
		in := ocr.Input{
			ID:        fmt.Sprintf("page-%d", idx+1),
			Image:     buf.Bytes(),
			Format:    ocr.ImageFormatPNG,
			PageIndex: idx,
			DPI:       int(dpi),
			Languages: job.OCR.Languages,
		}
		res, err := engine.Recognize(ctx, in)
		if err != nil {
			return nil, stageErr("recognize", err)
		}
		fmt.Fprintf(&text, "[Page %d]\n%s\n\n", idx+1, res.PlainText)
		tr.Step(1, n+1, len(indices))
	}
	tr.Finish()
	return []export.Artifact{{
		Name: baseName(src.Name) + "_ocr.txt",
		Data: []byte(text.String()),
	}}, nil
}
