// Package toml loads flat project settings written in TOML, the closest
// modern equivalent of the INI files the framework originally consumed.
// Technique manifests stay in HCL; a TOML file can only contribute the
// project, data, worker, splice, and step sections.
package toml

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/zclconf/go-cty/cty"

	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/ctyval"
	"github.com/simmering/ladle/internal/idea"
)

// Loader implements idea.Loader for TOML settings files.
type Loader struct{}

// NewLoader creates a TOML loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileSchema struct {
	Project *struct {
		Name          string `toml:"name"`
		Seed          int64  `toml:"seed"`
		Parallelize   bool   `toml:"parallelize"`
		MaxChapters   int    `toml:"max_chapters"`
		TypeThreshold int    `toml:"type_threshold"`
	} `toml:"project"`
	Data *struct {
		Source string `toml:"source"`
		Format string `toml:"format"`
		Label  string `toml:"label"`
	} `toml:"data"`
	Workers []struct {
		Name  string   `toml:"name"`
		Steps []string `toml:"steps"`
	} `toml:"worker"`
	Splices map[string][]string `toml:"splice"`
	Steps   map[string]struct {
		Techniques []string                  `toml:"techniques"`
		Parameters map[string]map[string]any `toml:"parameters"`
	} `toml:"step"`
}

// Load reads each TOML file and translates it into the shared model. Unknown
// keys are an error: misconfiguration fails loudly rather than silently
// falling back to defaults.
func (l *Loader) Load(ctx context.Context, paths ...string) (*idea.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := idea.New()

	for _, path := range paths {
		var file fileSchema
		meta, err := toml.DecodeFile(path, &file)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("unknown settings key %q in %s", undecoded[0].String(), path)
		}

		partial, err := translate(&file)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", path)
		}
		if err := model.Merge(partial); err != nil {
			return nil, errors.Wrapf(err, "merging %s", path)
		}
		logger.Debug("Loaded TOML settings file.", "file", path)
	}

	return model, nil
}

func translate(file *fileSchema) (*idea.Model, error) {
	model := idea.New()

	if file.Project != nil {
		model.General = &idea.General{
			Name:          file.Project.Name,
			Seed:          file.Project.Seed,
			Parallelize:   file.Project.Parallelize,
			MaxChapters:   file.Project.MaxChapters,
			TypeThreshold: file.Project.TypeThreshold,
		}
	}
	if file.Data != nil {
		model.Data = &idea.Data{
			Source: file.Data.Source,
			Format: file.Data.Format,
			Label:  file.Data.Label,
		}
	}
	for _, w := range file.Workers {
		model.Workers = append(model.Workers, &idea.Worker{
			Name:  w.Name,
			Steps: append([]string(nil), w.Steps...),
		})
	}
	for name, columns := range file.Splices {
		model.Splices[name] = append([]string(nil), columns...)
	}
	for name, s := range file.Steps {
		step := &idea.Step{
			Name:       name,
			Techniques: append([]string(nil), s.Techniques...),
			Overrides:  make(map[string]map[string]cty.Value),
		}
		for technique, params := range s.Parameters {
			values := make(map[string]cty.Value, len(params))
			for key, raw := range params {
				val, err := ctyval.FromGo(raw)
				if err != nil {
					return nil, errors.Wrapf(err, "step %q, parameters %q, key %q", name, technique, key)
				}
				values[key] = val
			}
			step.Overrides[technique] = values
		}
		model.Steps[name] = step
	}

	return model, nil
}
