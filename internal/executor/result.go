package executor

import (
	"time"

	"github.com/simmering/ladle/internal/book"
	"github.com/simmering/ladle/internal/dataset"
)

// AppliedTechnique records one technique's application for the run report:
// the resolved parameters, the columns it dropped, and the shape of the data
// afterwards.
type AppliedTechnique struct {
	Step       string         `json:"step"`
	Technique  string         `json:"technique"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Dropped    []string       `json:"dropped,omitempty"`
	Rows       int            `json:"rows"`
	Columns    int            `json:"columns"`
	Skipped    bool           `json:"skipped,omitempty"`
}

// Result is the outcome of applying one chapter.
type Result struct {
	Chapter  *book.Chapter
	Dataset  *dataset.Dataset
	Applied  []AppliedTechnique
	Duration time.Duration
	Err      error
}

// Failed reports whether the chapter ended in an error.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Report is the JSON-serializable view of a result.
type Report struct {
	Chapter  string             `json:"chapter"`
	Pipeline string             `json:"pipeline"`
	Applied  []AppliedTechnique `json:"applied"`
	Duration string             `json:"duration"`
	Error    string             `json:"error,omitempty"`
}

// Report builds the serializable view.
func (r *Result) Report() *Report {
	report := &Report{
		Chapter:  r.Chapter.Name,
		Pipeline: r.Chapter.String(),
		Applied:  r.Applied,
		Duration: r.Duration.String(),
	}
	if r.Err != nil {
		report.Error = r.Err.Error()
	}
	return report
}
