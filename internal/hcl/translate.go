// Translation from the HCL schema structs into the format-agnostic idea
// model. All expressions are evaluated here; nothing downstream ever sees
// HCL syntax.

package hcl

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/simmering/ladle/internal/idea"
	"github.com/simmering/ladle/internal/schema"
)

func (l *Loader) translateFile(ctx context.Context, file *schema.File, path string) (*idea.Model, error) {
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
	for _, sp := range file.Splices {
		if _, ok := model.Splices[sp.Name]; ok {
			return nil, errors.Newf("duplicate splice block %q in %s", sp.Name, path)
		}
		model.Splices[sp.Name] = append([]string(nil), sp.Columns...)
	}
	for _, s := range file.Steps {
		step, err := l.translateStep(s)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", path)
		}
		if _, ok := model.Steps[step.Name]; ok {
			return nil, errors.Newf("duplicate step block %q in %s", step.Name, path)
		}
		model.Steps[step.Name] = step
	}
	for _, t := range file.Techniques {
		def, err := l.translateTechnique(ctx, t)
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", path)
		}
		key := idea.Key(def.Step, def.Name)
		if _, ok := model.Techniques[key]; ok {
			return nil, errors.Newf("duplicate technique manifest %q in %s", key, path)
		}
		model.Techniques[key] = def
	}

	return model, nil
}

// translateStep evaluates each parameters block into a flat name→value map.
func (l *Loader) translateStep(s *schema.Step) (*idea.Step, error) {
	step := &idea.Step{
		Name:       s.Name,
		Techniques: append([]string(nil), s.Techniques...),
		Overrides:  make(map[string]map[string]cty.Value),
	}
	for _, block := range s.Parameters {
		if _, ok := step.Overrides[block.Technique]; ok {
			return nil, errors.Newf("step %q has two parameters blocks for %q", s.Name, block.Technique)
		}
		values, err := evaluateFlatBody(block.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "step %q, parameters %q", s.Name, block.Technique)
		}
		step.Overrides[block.Technique] = values
	}
	return step, nil
}

// translateTechnique converts a manifest block, parsing parameter types and
// evaluating default/required expressions.
func (l *Loader) translateTechnique(ctx context.Context, t *schema.TechniqueDefinition) (*idea.TechniqueDefinition, error) {
	def := &idea.TechniqueDefinition{
		Step:        t.Step,
		Name:        t.Name,
		Description: t.Description,
		Parameters:  make(map[string]*idea.ParameterDefinition),
	}
	if t.Lifecycle != nil {
		def.Lifecycle = &idea.Lifecycle{OnApply: t.Lifecycle.OnApply}
	}
	for _, p := range t.Parameters {
		param, err := l.translateParameter(ctx, p)
		if err != nil {
			return nil, errors.Wrapf(err, "technique %s.%s, parameter %q", t.Step, t.Name, p.Name)
		}
		if _, ok := def.Parameters[param.Name]; ok {
			return nil, errors.Newf("technique %s.%s declares parameter %q twice", t.Step, t.Name, p.Name)
		}
		def.Parameters[param.Name] = param
	}
	return def, nil
}

func (l *Loader) translateParameter(ctx context.Context, p *schema.ParameterDefinition) (*idea.ParameterDefinition, error) {
	parsedType, err := typeExprToCtyType(ctx, p.Type)
	if err != nil {
		return nil, err
	}
	if parsedType.IsObjectType() || parsedType.IsMapType() {
		return nil, errors.New("technique parameters must be flat; object and map types are not allowed")
	}

	param := &idea.ParameterDefinition{
		Name:        p.Name,
		Type:        parsedType,
		Description: p.Description,
	}

	if p.Default != nil {
		val, err := evaluateLiteral(p.Default, parsedType)
		if err != nil {
			return nil, errors.Wrap(err, "default")
		}
		if val != nil {
			param.Default = val
			param.Optional = true
		}
	}
	if p.Required != nil {
		val, err := evaluateLiteral(p.Required, parsedType)
		if err != nil {
			return nil, errors.Wrap(err, "required")
		}
		param.Required = val
	}

	return param, nil
}

// evaluateLiteral evaluates an expression with no variables in scope and
// converts it to the declared parameter type. A null result is treated as
// absent.
func evaluateLiteral(expr hcl.Expression, want cty.Type) (*cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if want != cty.DynamicPseudoType {
		converted, err := convertValue(val, want)
		if err != nil {
			return nil, err
		}
		val = converted
	}
	return &val, nil
}

// evaluateFlatBody evaluates every attribute of a body into a cty value,
// rejecting nested objects to keep parameter mappings flat.
func evaluateFlatBody(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.Type().IsObjectType() || val.Type().IsMapType() {
			return nil, errors.Newf("parameter %q is not flat; nested values are not allowed", name)
		}
		values[name] = val
	}
	return values, nil
}
