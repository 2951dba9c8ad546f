package registry

import (
	"github.com/simmering/ladle/internal/idea"
)

// Module is the interface implemented by every built-in technique package so
// the app can register them all at startup.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered handlers and manifest definitions for a
// single application instance.
type Registry struct {
	Handlers    map[string]*RegisteredTechnique
	Definitions map[string]*idea.TechniqueDefinition
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		Handlers:    make(map[string]*RegisteredTechnique),
		Definitions: make(map[string]*idea.TechniqueDefinition),
	}
}

// PopulateDefinitionsFromModel copies the loaded technique manifests into
// the registry for lookup during drafting and execution.
func (r *Registry) PopulateDefinitionsFromModel(model *idea.Model) {
	for key, def := range model.Techniques {
		r.Definitions[key] = def
	}
}

// Definition returns the manifest for a step/technique pair.
func (r *Registry) Definition(step, technique string) (*idea.TechniqueDefinition, bool) {
	def, ok := r.Definitions[idea.Key(step, technique)]
	return def, ok
}
