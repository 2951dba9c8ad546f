package app

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/executor"
	"github.com/simmering/ladle/internal/filer"
	"github.com/simmering/ladle/internal/worker"
)

// Run drafts the book, imports the data, applies every chapter and exports
// the results. Chapter failures do not abort the run; Run reports them in
// the returned error after every chapter has had its chance.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	b, err := worker.Draft(ctx, a.model)
	if err != nil {
		return errors.Wrap(err, "drafting book")
	}
	a.logger.Info("🚀 Book drafted.", "run_id", b.RunID, "chapters", b.Len(), "seed", b.Seed)

	f, err := filer.New(a.config.RootDir, b.RunID)
	if err != nil {
		return err
	}

	base, err := f.Import(a.model.Data)
	if err != nil {
		return errors.Wrap(err, "importing data")
	}
	if err := base.InferTypes(a.model.General.TypeThreshold); err != nil {
		return errors.Wrap(err, "inferring column types")
	}
	for _, name := range sortedKeys(a.model.Splices) {
		if err := base.SetSplice(name, a.model.Splices[name]); err != nil {
			return errors.Wrap(err, "defining splices")
		}
	}
	a.logger.Info("▶️ Data imported.", "dataset", base.Name, "rows", base.Rows(), "columns", base.Width())

	exec := executor.New(a.registry, a.model, a.config.WorkerCount)
	results, err := exec.Run(ctx, b, base)
	if err != nil {
		return err
	}

	if err := a.export(f, results); err != nil {
		return errors.Wrap(err, "exporting results")
	}

	failed := 0
	for _, result := range results {
		if result.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return errors.Newf("%d of %d chapters failed; see %s", failed, len(results), f.RunDir())
	}
	a.logger.Info("🏁 Run finished.", "results", f.RunDir())
	return nil
}

// export writes each chapter's transformed dataset, its recorded summary
// table when present, and a JSON report, plus a run-level report that
// aggregates every chapter.
func (a *App) export(f *filer.Filer, results []*executor.Result) error {
	reports := make([]*executor.Report, 0, len(results))
	for _, result := range results {
		reports = append(reports, result.Report())

		dir, err := f.ChapterDir(result.Chapter.Name)
		if err != nil {
			return err
		}
		if err := filer.WriteJSON(filepath.Join(dir, "report.json"), result.Report()); err != nil {
			return err
		}
		if result.Dataset == nil {
			continue
		}
		if err := filer.ExportCSV(result.Dataset, filepath.Join(dir, "dataset.csv")); err != nil {
			return err
		}
		if rows := result.Dataset.RecordedSummary(); rows != nil {
			if err := filer.WriteSummary(rows, filepath.Join(dir, "summary.csv")); err != nil {
				return err
			}
		}
	}
	return filer.WriteJSON(filepath.Join(f.RunDir(), "run.json"), reports)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
