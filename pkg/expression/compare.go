package expression

import (
	"cmp"
	"strings"

	"k8s.io/apimachinery/pkg/api/equality"

	"github.com/l7mp/rxcollections/pkg/util"
)

// Compare orders dynamically typed values: numbers numerically, strings and booleans naturally,
// and anything else by its JSON rendering. Values of different kinds are ordered by kind.
func Compare(a, b any) int {
	ka, kb := kind(a), kind(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case kindNil:
		return 0
	case kindBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case kindNumber:
		x, _ := AsFloat(a)
		y, _ := AsFloat(b)
		return cmp.Compare(x, y)
	case kindString:
		return strings.Compare(a.(string), b.(string))
	}

	if equality.Semantic.DeepEqual(a, b) {
		return 0
	}
	return strings.Compare(util.Stringify(a), util.Stringify(b))
}

const (
	kindNil = iota
	kindBool
	kindNumber
	kindString
	kindOther
)

func kind(v any) int {
	switch v.(type) {
	case nil:
		return kindNil
	case bool:
		return kindBool
	case string:
		return kindString
	}
	if _, ok := AsFloat(v); ok {
		return kindNumber
	}
	return kindOther
}

// AsFloat converts any Go number to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Normalize converts integral float64 values, as produced by JSON and YAML decoders, into int64,
// recursively. CEL treats int and double as distinct types, so `x.count == 2` would not match a
// decoded 2.0 otherwise.
func Normalize(v any) any {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return int64(n)
		}
		return n
	case []any:
		ret := make([]any, len(n))
		for i, e := range n {
			ret[i] = Normalize(e)
		}
		return ret
	case map[string]any:
		ret := make(map[string]any, len(n))
		for k, e := range n {
			ret[k] = Normalize(e)
		}
		return ret
	}
	return v
}
