// Package hcl is the primary settings front end: it parses project files and
// technique manifests written in HCL and translates them into the
// format-agnostic idea model.
package hcl

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/fsutil"
	"github.com/simmering/ladle/internal/idea"
	"github.com/simmering/ladle/internal/schema"
)

// Loader implements idea.Loader for HCL files.
type Loader struct{}

// NewLoader creates an HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file under the given paths (files or directories),
// decodes them against the shared schema, and translates the result. Load
// order is deterministic; duplicate blocks across files are reported by
// Model.Merge rather than silently overwritten.
func (l *Loader) Load(ctx context.Context, paths ...string) (*idea.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := idea.New()

	parser := hclparse.NewParser()
	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, errors.Wrapf(err, "walking settings path %q", path)
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl files found in settings path.", "path", path)
			continue
		}

		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, errors.Wrapf(diags, "parsing %s", filePath)
			}

			var file schema.File
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
				return nil, errors.Wrapf(diags, "decoding %s", filePath)
			}

			partial, err := l.translateFile(ctx, &file, filePath)
			if err != nil {
				return nil, err
			}
			if err := model.Merge(partial); err != nil {
				return nil, errors.Wrapf(err, "merging %s", filePath)
			}
			logger.Debug("Loaded settings file.", "file", filePath)
		}
	}

	return model, nil
}
