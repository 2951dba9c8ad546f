// Parsing of HCL type expressions (string, number, bool, list(...)) into
// cty types, plus value conversion helpers shared by the loader.

package hcl

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/simmering/ladle/internal/ctxlog"
)

// typeExprToCtyType converts a manifest type expression into its cty.Type.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Type expression is nil, defaulting to any.")
		return cty.DynamicPseudoType, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		if len(v.Args) != 1 {
			return cty.DynamicPseudoType, errors.Newf("type constructor %q requires exactly one argument, got %d", v.Name, len(v.Args))
		}
		elementType, err := typeExprToCtyType(ctx, v.Args[0])
		if err != nil {
			return cty.DynamicPseudoType, err
		}
		if elementType == cty.DynamicPseudoType {
			return cty.DynamicPseudoType, errors.New("collection types cannot contain type 'any'")
		}
		switch v.Name {
		case "list":
			return cty.List(elementType), nil
		case "set":
			return cty.Set(elementType), nil
		default:
			return cty.DynamicPseudoType, errors.Newf("unknown type constructor %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.DynamicPseudoType, errors.New("invalid type keyword: not a single identifier")
		}
		switch name := v.Traversal.RootName(); name {
		case "string":
			return cty.String, nil
		case "number":
			return cty.Number, nil
		case "bool":
			return cty.Bool, nil
		case "any":
			return cty.DynamicPseudoType, nil
		default:
			return cty.DynamicPseudoType, errors.Newf("unknown primitive type %q", name)
		}

	default:
		return cty.DynamicPseudoType, errors.Newf("unsupported expression for type definition: %T", v)
	}
}

// convertValue applies cty's standard conversions to coerce val into want.
func convertValue(val cty.Value, want cty.Type) (cty.Value, error) {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, errors.Wrapf(err, "cannot convert %s to %s", val.Type().FriendlyName(), want.FriendlyName())
	}
	return converted, nil
}
