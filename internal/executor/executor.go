package executor

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/book"
	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/idea"
	"github.com/simmering/ladle/internal/registry"
)

// Executor applies a Book's chapters to a dataset.
type Executor struct {
	registry *registry.Registry
	model    *idea.Model
	workers  int
}

// New creates an Executor. workers caps the pool size when the project
// enables parallel execution; values below one fall back to sequential.
func New(reg *registry.Registry, model *idea.Model, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{registry: reg, model: model, workers: workers}
}

// Run applies every chapter of the book to its own clone of base. Results
// come back in chapter order. Chapter failures are recorded per result; Run
// itself only fails when the context is cancelled.
func (e *Executor) Run(ctx context.Context, b *book.Book, base *dataset.Dataset) ([]*Result, error) {
	logger := ctxlog.FromContext(ctx)

	poolSize := 1
	if e.model.General.Parallelize {
		poolSize = e.workers
	}
	if poolSize > b.Len() {
		poolSize = b.Len()
	}
	if poolSize < 1 {
		poolSize = 1
	}
	logger.Info("▶️ Applying book.", "chapters", b.Len(), "workers", poolSize)

	results := make([]*Result, b.Len())
	jobs := make(chan *book.Chapter)
	var wg sync.WaitGroup

	for workerID := 0; workerID < poolSize; workerID++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			workerLogger := logger.With("workerID", workerID)
			for chapter := range jobs {
				if ctx.Err() != nil {
					results[chapter.Index] = &Result{Chapter: chapter, Err: ctx.Err()}
					continue
				}
				workerLogger.Debug("Worker picked up chapter.", "chapter", chapter.Name)
				results[chapter.Index] = e.applyChapter(ctx, chapter, base)
			}
		}(workerID)
	}

	for _, chapter := range b.Chapters {
		jobs <- chapter
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, errors.Wrap(err, "run cancelled")
	}

	failed := 0
	for _, result := range results {
		if result.Failed() {
			failed++
		}
	}
	logger.Info("🏁 Book applied.", "chapters", b.Len(), "failed", failed)
	return results, nil
}

// applyChapter runs one chapter sequentially against a fresh clone.
func (e *Executor) applyChapter(ctx context.Context, chapter *book.Chapter, base *dataset.Dataset) *Result {
	logger := ctxlog.FromContext(ctx).With("chapter", chapter.Name)
	logger.Info("▶️ Starting chapter", "pipeline", chapter.String())
	start := time.Now()

	result := &Result{Chapter: chapter, Dataset: base.Clone()}

	for _, placed := range chapter.Steps {
		if err := ctx.Err(); err != nil {
			result.Err = err
			break
		}
		applied, err := e.applyTechnique(ctx, placed, result.Dataset)
		result.Applied = append(result.Applied, applied)
		if err != nil {
			result.Err = errors.Wrapf(err, "step %q, technique %q", placed.Step, placed.Technique)
			logger.Error("Chapter failed.", "step", placed.Step, "technique", placed.Technique, "error", err)
			break
		}
	}

	result.Duration = time.Since(start)
	if !result.Failed() {
		logger.Info("✅ Finished chapter", "duration", result.Duration)
	}
	return result
}

// applyTechnique assembles parameters for one placed technique and invokes
// its handler.
func (e *Executor) applyTechnique(ctx context.Context, placed book.Placed, d *dataset.Dataset) (AppliedTechnique, error) {
	applied := AppliedTechnique{Step: placed.Step, Technique: placed.Technique}

	if placed.Technique == idea.NoneTechnique {
		applied.Skipped = true
		applied.Rows, applied.Columns = d.Rows(), d.Width()
		return applied, nil
	}

	def, ok := e.registry.Definition(placed.Step, placed.Technique)
	if !ok {
		return applied, errors.Newf("no manifest for %s", idea.Key(placed.Step, placed.Technique))
	}

	overrides := e.model.StepPlan(placed.Step).Overrides[placed.Technique]
	values, err := assembleParameters(def, overrides, e.model.General.Seed)
	if err != nil {
		return applied, err
	}
	applied.Parameters = loggableParameters(values)

	handler, ok := e.registry.Handlers[def.Lifecycle.OnApply]
	if !ok {
		return applied, errors.Newf("handler %q not registered", def.Lifecycle.OnApply)
	}

	var params any
	if handler.NewParams != nil {
		params = handler.NewParams()
		if err := registry.DecodeParams(values, params); err != nil {
			return applied, err
		}
	}

	droppedBefore := len(d.Dropped())
	if err := e.registry.Apply(ctx, def.Lifecycle.OnApply, d, params); err != nil {
		return applied, err
	}

	for _, drop := range d.Dropped()[droppedBefore:] {
		applied.Dropped = append(applied.Dropped, drop.Column)
	}
	applied.Rows, applied.Columns = d.Rows(), d.Width()
	return applied, nil
}
