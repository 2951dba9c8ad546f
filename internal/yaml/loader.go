// Package yaml loads project settings written in YAML. It mirrors the TOML
// front end: project, data, worker, splice, and step sections only, with
// technique manifests remaining in HCL.
package yaml

import (
	"bytes"
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/simmering/ladle/internal/ctxlog"
	"github.com/simmering/ladle/internal/ctyval"
	"github.com/simmering/ladle/internal/idea"
)

// Loader implements idea.Loader for YAML settings files.
type Loader struct{}

// NewLoader creates a YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileSchema struct {
	Project *struct {
		Name          string `yaml:"name"`
		Seed          int64  `yaml:"seed"`
		Parallelize   bool   `yaml:"parallelize"`
		MaxChapters   int    `yaml:"max_chapters"`
		TypeThreshold int    `yaml:"type_threshold"`
	} `yaml:"project"`
	Data *struct {
		Source string `yaml:"source"`
		Format string `yaml:"format"`
		Label  string `yaml:"label"`
	} `yaml:"data"`
	Workers []struct {
		Name  string   `yaml:"name"`
		Steps []string `yaml:"steps"`
	} `yaml:"workers"`
	Splices map[string][]string `yaml:"splices"`
	Steps   map[string]struct {
		Techniques []string                  `yaml:"techniques"`
		Parameters map[string]map[string]any `yaml:"parameters"`
	} `yaml:"steps"`
}

// Load reads each YAML file and translates it into the shared model. Unknown
// keys fail the load via strict decoding.
func (l *Loader) Load(ctx context.Context, paths ...string) (*idea.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := idea.New()

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}

		var file fileSchema
		decoder := yaml.NewDecoder(bytes.NewReader(raw))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}

		partial, err := translate(&file)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", path)
		}
		if err := model.Merge(partial); err != nil {
			return nil, errors.Wrapf(err, "merging %s", path)
		}
		logger.Debug("Loaded YAML settings file.", "file", path)
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
