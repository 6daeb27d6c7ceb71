// Package expression compiles CEL expressions over dynamically typed collection items. An
// expression sees the item as the variable "x"; items are usually decoded from YAML or JSON, so
// they are scalars, []any or map[string]any.
package expression

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
)

// Variable is the name the evaluated item is bound to.
const Variable = "x"

// Expression is a compiled CEL program.
type Expression struct {
	source string
	prog   cel.Program
	log    logr.Logger
}

// Compile parses, type-checks and plans expr.
func Compile(expr string, logger logr.Logger) (*Expression, error) {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	expr = strings.TrimSpace(expr)

	env, err := cel.NewEnv(cel.Variable(Variable, cel.DynType))
	if err != nil {
		return nil, NewCompileError(expr, err)
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return nil, NewCompileError(expr, iss.Err())
	}
	checked, iss := env.Check(ast)
	if iss != nil && iss.Err() != nil {
		return nil, NewCompileError(expr, iss.Err())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return nil, NewCompileError(expr, err)
	}

	return &Expression{source: expr, prog: prog, log: logger.WithName("expression")}, nil
}

// String returns the expression source.
func (e *Expression) String() string { return e.source }

// Evaluate runs the expression on v and returns the result as a native Go value.
func (e *Expression) Evaluate(v any) (any, error) {
	out, _, err := e.prog.Eval(map[string]any{Variable: v})
	if err != nil {
		return nil, NewEvaluationError(e.source, err)
	}
	ret, err := native(out)
	if err != nil {
		return nil, NewEvaluationError(e.source, err)
	}
	e.log.V(8).Info("eval ready", "expression", e.source, "arg", v, "result", ret)
	return ret, nil
}

// EvaluateBool runs the expression on v and requires a boolean result.
func (e *Expression) EvaluateBool(v any) (bool, error) {
	ret, err := e.Evaluate(v)
	if err != nil {
		return false, err
	}
	b, ok := ret.(bool)
	if !ok {
		return false, NewTypeError(e.source, "bool", ret)
	}
	return b, nil
}

// Predicate returns the expression as a filter. Items the expression fails on are dropped.
func (e *Expression) Predicate() func(any) bool {
	return func(v any) bool {
		ok, err := e.EvaluateBool(v)
		if err != nil {
			e.log.V(2).Info("predicate failed", "error", err.Error())
			return false
		}
		return ok
	}
}

// Selector returns the expression as a mapping. Items the expression fails on map to nil.
func (e *Expression) Selector() func(any) any {
	return func(v any) any {
		ret, err := e.Evaluate(v)
		if err != nil {
			e.log.V(2).Info("selector failed", "error", err.Error())
			return nil
		}
		return ret
	}
}

// OrderBy returns a comparer ordering items by the value of the expression.
func (e *Expression) OrderBy() func(a, b any) int {
	sel := e.Selector()
	return func(a, b any) int { return Compare(sel(a), sel(b)) }
}

func native(v ref.Val) (any, error) {
	switch t := v.(type) {
	case traits.Mapper:
		ret := map[string]any{}
		it := t.Iterator()
		for it.HasNext() == types.True {
			k := it.Next()
			key, ok := k.Value().(string)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a string", k.Value())
			}
			e, err := native(t.Get(k))
			if err != nil {
				return nil, err
			}
			ret[key] = e
		}
		return ret, nil
	case traits.Lister:
		size, ok := t.Size().(types.Int)
		if !ok {
			return nil, fmt.Errorf("invalid list size %v", t.Size())
		}
		ret := make([]any, int(size))
		for i := range ret {
			e, err := native(t.Get(types.Int(i)))
			if err != nil {
				return nil, err
			}
			ret[i] = e
		}
		return ret, nil
	}
	return v.Value(), nil
}
