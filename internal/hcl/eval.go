package hcl

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// envObject exposes the process environment to templates as `env.NAME`.
func envObject() cty.Value {
	vals := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		name, value, ok := strings.Cut(e, "=")
		if !ok || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vals[name] = cty.StringVal(value)
	}
	return cty.ObjectVal(vals)
}

// newEvalContext builds an evaluation context from the given variables.
// Empty strings are left out so referencing them is a diagnostic rather
// than a silent empty value.
func newEvalContext(env cty.Value, vars map[string]string) *hcl.EvalContext {
	variables := map[string]cty.Value{"env": env}
	for k, v := range vars {
		if v != "" {
			variables[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{Variables: variables}
}

// evalString evaluates expr and converts the result to a Go string.
func evalString(expr hcl.Expression, evalCtx *hcl.EvalContext) (string, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() {
		return "", nil
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	var out string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return "", err
	}
	return out, nil
}
