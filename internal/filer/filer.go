// Package filer manages the folder tree of a run and all tabular file I/O.
// It is the only package that touches the data directories: everything else
// asks the Filer for a path or hands it a dataset to persist.
package filer

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/simmering/ladle/internal/dataset"
	"github.com/simmering/ladle/internal/idea"
)

// ErrUnknownFormat is returned for data sources the filer cannot decode.
var ErrUnknownFormat = errors.New("unknown data format")

// Filer owns the run's folder layout:
//
//	<root>/results/<run-id>/          run artifacts
//	<root>/results/<run-id>/<chapter>/ per-chapter exports
type Filer struct {
	root   string
	runDir string
}

// New creates a Filer rooted at root and establishes the run folder.
func New(root string, runID uuid.UUID) (*Filer, error) {
	runDir := filepath.Join(root, "results", runID.String())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating run folder")
	}
	return &Filer{root: root, runDir: runDir}, nil
}

// Root returns the project root folder.
func (f *Filer) Root() string {
	return f.root
}

// RunDir returns the folder holding this run's artifacts.
func (f *Filer) RunDir() string {
	return f.runDir
}

// ChapterDir creates (if needed) and returns the folder for one chapter's
// exports.
func (f *Filer) ChapterDir(chapter string) (string, error) {
	dir := filepath.Join(f.runDir, chapter)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating chapter folder %q", chapter)
	}
	return dir, nil
}

// Import reads the configured data source into a Dataset. The format comes
// from the settings when set, otherwise from the file extension.
func (f *Filer) Import(data *idea.Data) (*dataset.Dataset, error) {
	if data == nil || data.Source == "" {
		return nil, errors.New("no data source configured")
	}
	source := data.Source
	if !filepath.IsAbs(source) {
		source = filepath.Join(f.root, source)
	}

	format := data.Format
	if format == "" {
		switch filepath.Ext(source) {
		case ".csv":
			format = "csv"
		case ".json":
			format = "json"
		}
	}

	var (
		d   *dataset.Dataset
		err error
	)
	switch format {
	case "csv":
		d, err = ImportCSV(source)
	case "json":
		d, err = ImportJSON(source)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q for source %q", format, data.Source)
	}
	if err != nil {
		return nil, err
	}
	d.Label = data.Label
	return d, nil
}
