// Package worker drafts the Book for a run: it collects the ordered step
// lists declared by the project's workers and expands each step's candidate
// techniques into the cross-product of concrete chapters.
package worker

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/simmering/ladle/internal/book"
	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/idea"
)

// ErrTooManyChapters guards the cross-product against settings that would
// expand into an unreasonable number of pipelines.
var ErrTooManyChapters = errors.New("cross-product exceeds max_chapters")

// Draft expands the model into a Book. Every worker contributes its steps in
// declared order; each step contributes its candidate techniques; the Book
// receives one chapter per element of the cross-product. A project with no
// steps yields a single empty chapter so the run still produces a report.
func Draft(ctx context.Context, model *idea.Model) (*book.Book, error) {
	logger := ctxlog.FromContext(ctx)

	name := model.General.Name
	if name == "" {
		name = "ladle"
	}
	b := book.New(name, model.General.Seed)

	steps, err := collectSteps(model)
	if err != nil {
		return nil, err
	}
	logger.Debug("Drafting book.", "steps", steps)

	if len(steps) == 0 {
		b.Add(nil)
		logger.Warn("Project declares no steps; drafted a single empty chapter.")
		return b, nil
	}

	candidates := make([][]string, len(steps))
	total := 1
	for i, step := range steps {
		candidates[i] = model.StepPlan(step).Techniques
		total *= len(candidates[i])
		if total > model.General.MaxChapters {
			return nil, errors.Wrapf(ErrTooManyChapters,
				"steps %v expand to more than %d chapters", steps, model.General.MaxChapters)
		}
	}

	// Odometer walk over the candidate lists keeps chapters in a stable,
	// settings-declared order.
	choice := make([]int, len(steps))
	for {
		placed := make([]book.Placed, len(steps))
		for i, step := range steps {
			placed[i] = book.Placed{Step: step, Technique: candidates[i][choice[i]]}
		}
		b.Add(placed)

		pos := len(choice) - 1
		for pos >= 0 {
			choice[pos]++
			if choice[pos] < len(candidates[pos]) {
				break
			}
			choice[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	logger.Info("Book drafted.", "chapters", b.Len(), "steps", len(steps))
	return b, nil
}

// collectSteps concatenates the step lists of all workers in declaration
// order. A step appearing twice is a configuration error, not a merge.
func collectSteps(model *idea.Model) ([]string, error) {
	var steps []string
	seen := make(map[string]string)
	for _, w := range model.Workers {
		for _, step := range w.Steps {
			if owner, ok := seen[step]; ok {
				return nil, errors.Newf("step %q appears in worker %q and worker %q", step, owner, w.Name)
			}
			seen[step] = w.Name
			steps = append(steps, step)
		}
	}
	return steps, nil
}
