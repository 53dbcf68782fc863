// Package workspace owns the transient state of one tool session: the open
// document, its page selection, the merge queue, and the single-flight rule
// that keeps loads and transforms strictly sequential.
package workspace

import (
	"context"
	"errors"

	"sync"

	"github.com/wudi/pagekit/export"
	"github.com/wudi/pagekit/loader"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/pipeline"
	"github.com/wudi/pagekit/queue"
	"github.com/wudi/pagekit/selection"
)

// ErrBusy is returned when a load or transform is started while another is
// still in flight. Overlapping operations are a caller logic error; the UI
// disables the triggering action while busy.
var ErrBusy = errors.New("another operation is in flight")

// Workspace is one tool session. All long-running work happens on the
// caller's goroutine; the mutex only guards the busy flag and state swaps.
type Workspace struct {
	loader *loader.Loader
	runner *pipeline.Runner
	logger observability.Logger

	mu    sync.Mutex
	busy  bool
	doc   *loader.SourceDocument
	sel   *selection.Model
	queue *queue.Queue
}

// New builds a workspace. maxQueueFileSize bounds merge-queue admission.
func New(l *loader.Loader, r *pipeline.Runner, maxQueueFileSize int64, logger observability.Logger) *Workspace {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &Workspace{
		loader: l,
		runner: r,
		logger: logger,
		sel:    selection.New(0),
		queue:  queue.New(maxQueueFileSize),
	}
}

func (w *Workspace) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrBusy
	}
	w.busy = true
	return nil
}

func (w *Workspace) end() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

// Busy reports whether an operation is in flight.
func (w *Workspace) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Document returns the currently open document, or nil.
func (w *Workspace) Document() *loader.SourceDocument {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc
}

// Selection returns the selection model for the open document.
func (w *Workspace) Selection() *selection.Model { return w.sel }

// Queue returns the merge queue.
func (w *Workspace) Queue() *queue.Queue { return w.queue }

// Load opens a new document. On success it replaces the open document and
// resets the selection; on failure the previous document and selection are
// preserved untouched so the user can retry.
func (w *Workspace) Load(ctx context.Context, name string, data []byte, progress func(int)) error {
	if err := w.begin(); err != nil {
		return err
	}
	defer w.end()

	doc, err := w.loader.Open(ctx, name, data, progress)
	if err != nil {
		w.logger.Warn("load failed",
			observability.String("name", name),
			observability.Error("err", err))
		return err
	}

	w.mu.Lock()
	w.doc = doc
	w.sel = selection.New(doc.PageCount)
	w.mu.Unlock()
	return nil
}

// Run executes a transform job. The session stays usable after a failure;
// nothing about the open document or selection changes.
func (w *Workspace) Run(ctx context.Context, job pipeline.Job, progress func(int)) ([]export.Artifact, error) {
	if err := w.begin(); err != nil {
		return nil, err
	}
	defer w.end()
	return w.runner.Run(ctx, job, progress)
}

// ExtractJob builds an extract job over the open document and the current
// selection.
func (w *Workspace) ExtractJob() (pipeline.Job, error) {
	doc, err := w.requireDocument()
	if err != nil {
		return pipeline.Job{}, err
	}
	return pipeline.Job{
		Kind:      pipeline.KindExtract,
		Sources:   []pipeline.Source{{Name: doc.Name, Data: doc.Data}},
		Selection: w.sel.Indices(),
	}, nil
}

// RotateJob builds a rotate job over the open document and selection.
func (w *Workspace) RotateJob(degrees int) (pipeline.Job, error) {
	doc, err := w.requireDocument()
	if err != nil {
		return pipeline.Job{}, err
	}
	return pipeline.Job{
		Kind:      pipeline.KindRotate,
		Sources:   []pipeline.Source{{Name: doc.Name, Data: doc.Data}},
		Selection: w.sel.Indices(),
		Rotation:  pipeline.RotationSpec{Degrees: degrees},
	}, nil
}

// BurstJob builds a burst job over the open document.
func (w *Workspace) BurstJob() (pipeline.Job, error) {
	doc, err := w.requireDocument()
	if err != nil {
		return pipeline.Job{}, err
	}
	return pipeline.Job{
		Kind:    pipeline.KindBurst,
		Sources: []pipeline.Source{{Name: doc.Name, Data: doc.Data}},
	}, nil
}

// MergeJob builds a concatenate job from the merge queue in queue order.
func (w *Workspace) MergeJob(numbering pipeline.NumberingSpec) (pipeline.Job, error) {
	items := w.queue.Items()
	if len(items) < queue.MinMergeCount {
		return pipeline.Job{}, pipeline.ErrTooFewDocuments
	}
	sources := make([]pipeline.Source, len(items))
	for i, it := range items {
		sources[i] = pipeline.Source{Name: it.Name, Data: it.Data}
	}
	return pipeline.Job{
		Kind:      pipeline.KindConcatenate,
		Sources:   sources,
		Numbering: numbering,
	}, nil
}

// RecognizeJob builds an OCR job over the open document and selection.
func (w *Workspace) RecognizeJob(spec pipeline.OCRSpec) (pipeline.Job, error) {
	doc, err := w.requireDocument()
	if err != nil {
		return pipeline.Job{}, err
	}
	return pipeline.Job{
		Kind:      pipeline.KindRecognize,
		Sources:   []pipeline.Source{{Name: doc.Name, Data: doc.Data}},
		Selection: w.sel.Indices(),
		OCR:       spec,
	}, nil
}

func (w *Workspace) requireDocument() (*loader.SourceDocument, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doc == nil {
		return nil, errors.New("no document loaded")
	}
	return w.doc, nil
}
