// Package schema declares the HCL shapes of project files and technique
// manifests. These structs exist only for gohcl decoding; the hcl loader
// translates them into the format-agnostic idea model immediately.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// --- Project file structures ---

// Project is the run-wide options block.
type Project struct {
	Name          string `hcl:"name,optional"`
	Seed          int64  `hcl:"seed,optional"`
	Parallelize   bool   `hcl:"parallelize,optional"`
	MaxChapters   int    `hcl:"max_chapters,optional"`
	TypeThreshold int    `hcl:"type_threshold,optional"`
}

// Data names the tabular source for the run.
type Data struct {
	Source string `hcl:"source"`
	Format string `hcl:"format,optional"`
	Label  string `hcl:"label,optional"`
}

// Worker is one named, ordered pass through pipeline steps.
type Worker struct {
	Name  string   `hcl:"name,label"`
	Steps []string `hcl:"steps"`
}

// Splice names a reusable column group that techniques can select with
// their splice parameter.
type Splice struct {
	Name    string   `hcl:"name,label"`
	Columns []string `hcl:"columns"`
}

// StepParams is a labeled parameters block carrying overrides for one
// candidate technique of a step.
type StepParams struct {
	Technique string   `hcl:"technique,label"`
	Body      hcl.Body `hcl:",remain"`
}

// Step declares the candidate techniques for one pipeline stage.
type Step struct {
	Name       string        `hcl:"name,label"`
	Techniques []string      `hcl:"techniques,optional"`
	Parameters []*StepParams `hcl:"parameters,block"`
}

// --- Technique manifest structures ---

// Lifecycle maps the technique's apply event to a registered Go handler.
type Lifecycle struct {
	OnApply string `hcl:"on_apply"`
}

// ParameterDefinition declares one flat typed parameter.
type ParameterDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Required    hcl.Expression `hcl:"required,optional"`
}

// TechniqueDefinition is the manifest for one named operation within a step.
type TechniqueDefinition struct {
	Step        string                 `hcl:"step,label"`
	Name        string                 `hcl:"technique,label"`
	Description string                 `hcl:"description,optional"`
	Lifecycle   *Lifecycle             `hcl:"lifecycle,block"`
	Parameters  []*ParameterDefinition `hcl:"parameter,block"`
}

// File is the top-level structure of any .hcl settings file. Project files
// and technique manifests share one schema so both kinds of block may live
// in either location.
type File struct {
	Project    *Project               `hcl:"project,block"`
	Data       *Data                  `hcl:"data,block"`
	Workers    []*Worker              `hcl:"worker,block"`
	Splices    []*Splice              `hcl:"splice,block"`
	Steps      []*Step                `hcl:"step,block"`
	Techniques []*TechniqueDefinition `hcl:"technique,block"`
	Body       hcl.Body               `hcl:",remain"`
}
