package idea

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/zclconf/go-cty/cty"
)

// NoneTechnique is the implicit no-op technique assigned to steps that
// declare no candidates. It always resolves and never touches the data.
const NoneTechnique = "none"

// Defaults applied by Finalize when the settings file leaves a value unset.
const (
	DefaultSeed            = 4
	DefaultMaxChapters     = 64
	DefaultTypeThreshold   = 10
	DefaultBufferedColumns = 0 // reserved
)

// Model is the unified representation of a project's configuration: general
// run options, data source, the ordered workers with their step lists, the
// per-step technique candidates and parameter overrides, and every technique
// definition loaded from manifests.
type Model struct {
	General    *General
	Data       *Data
	Workers    []*Worker
	Steps      map[string]*Step
	Splices    map[string][]string             // named column groups applied after import
	Techniques map[string]*TechniqueDefinition // keyed by Key(step, technique)
}

// General holds run-wide options.
type General struct {
	Name          string
	Seed          int64
	Parallelize   bool
	MaxChapters   int
	TypeThreshold int
}

// Data names the tabular source to import before applying chapters.
type Data struct {
	Source string
	Format string // "csv" or "json"; inferred from Source when empty
	Label  string
}

// Worker is one ordered pass through the pipeline: a named sequence of steps.
type Worker struct {
	Name  string
	Steps []string
}

// Step holds the candidate techniques for one pipeline stage plus the user's
// parameter overrides per technique. Override values are already evaluated;
// no configuration syntax leaks past the loaders.
type Step struct {
	Name       string
	Techniques []string
	Overrides  map[string]map[string]cty.Value
}

// TechniqueDefinition is the declarative manifest for one named operation:
// which Go handler applies it and which typed parameters it accepts.
type TechniqueDefinition struct {
	Step        string
	Name        string
	Description string
	Lifecycle   *Lifecycle
	Parameters  map[string]*ParameterDefinition
}

// Lifecycle maps a technique's apply event to a registered Go handler name.
type Lifecycle struct {
	OnApply string
}

// ParameterDefinition declares one flat, typed parameter of a technique.
// Default fills in when the user is silent; Required always wins, even over
// user overrides.
type ParameterDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Required    *cty.Value
	Optional    bool
}

// Key builds the registry key for a technique within a step.
func Key(step, technique string) string {
	return step + "." + technique
}

// New returns an empty model ready for loaders to populate.
func New() *Model {
	return &Model{
		Steps:      make(map[string]*Step),
		Splices:    make(map[string][]string),
		Techniques: make(map[string]*TechniqueDefinition),
	}
}

// Merge folds other into m. Scalars in other win when set; collections are
// unioned. Duplicate step or technique declarations are an error rather than
// a silent overwrite.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if other.General != nil {
		if m.General == nil {
			m.General = other.General
		} else {
			return errors.New("duplicate project block across settings files")
		}
	}
	if other.Data != nil {
		if m.Data == nil {
			m.Data = other.Data
		} else {
			return errors.New("duplicate data block across settings files")
		}
	}
	m.Workers = append(m.Workers, other.Workers...)
	for name, step := range other.Steps {
		if _, ok := m.Steps[name]; ok {
			return errors.Newf("duplicate step block %q", name)
		}
		m.Steps[name] = step
	}
	for name, columns := range other.Splices {
		if _, ok := m.Splices[name]; ok {
			return errors.Newf("duplicate splice block %q", name)
		}
		m.Splices[name] = columns
	}
	for key, def := range other.Techniques {
		if _, ok := m.Techniques[key]; ok {
			return errors.Newf("duplicate technique manifest %q", key)
		}
		m.Techniques[key] = def
	}
	return nil
}

// Finalize applies defaults and validates the assembled model. It must be
// called once, after all loaders have contributed, and before anything
// downstream reads the model.
func (m *Model) Finalize() error {
	if m.General == nil {
		m.General = &General{}
	}
	if m.General.Seed == 0 {
		m.General.Seed = DefaultSeed
	}
	if m.General.MaxChapters <= 0 {
		m.General.MaxChapters = DefaultMaxChapters
	}
	if m.General.TypeThreshold <= 0 {
		m.General.TypeThreshold = DefaultTypeThreshold
	}

	for name, step := range m.Steps {
		if len(step.Techniques) == 0 {
			step.Techniques = []string{NoneTechnique}
		}
		for _, tech := range step.Techniques {
			if tech == NoneTechnique {
				continue
			}
			if _, ok := m.Techniques[Key(name, tech)]; !ok {
				return errors.Newf("step %q names technique %q but no manifest defines %s", name, tech, Key(name, tech))
			}
		}
		for tech := range step.Overrides {
			if !contains(step.Techniques, tech) {
				return errors.Newf("step %q carries parameters for %q which is not a candidate technique", name, tech)
			}
		}
	}

	for name, columns := range m.Splices {
		if len(columns) == 0 {
			return errors.Newf("splice %q names no columns", name)
		}
	}

	for key, def := range m.Techniques {
		if def.Lifecycle == nil || def.Lifecycle.OnApply == "" {
			return errors.Newf("technique %q declares no on_apply handler", key)
		}
	}
	return nil
}

// StepPlan returns the Step block for name, or a synthetic none-step when the
// settings file never declared one. Workers may list steps with no block;
// that is a no-op stage, not an error.
func (m *Model) StepPlan(name string) *Step {
	if step, ok := m.Steps[name]; ok {
		return step
	}
	return &Step{Name: name, Techniques: []string{NoneTechnique}}
}

// TechniqueKeys returns the sorted keys of all loaded manifests.
func (m *Model) TechniqueKeys() []string {
	keys := make([]string, 0, len(m.Techniques))
	for key := range m.Techniques {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
