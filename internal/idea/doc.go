// Package idea defines the format-agnostic settings model for a project run,
// along with the Loader interface implemented by the HCL, TOML, and YAML
// front ends.
//
// The idea.Model is the single source of truth for the worker (chapter
// drafting), the registry (technique definitions), and the executor. It is
// immutable once loaded: loaders build it, Finalize applies defaults and
// validates it, and nothing mutates it afterwards.
package idea
