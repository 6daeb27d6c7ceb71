package expression

import (
	"fmt"
)

type ErrCompile = error

func NewCompileError(expr string, err error) ErrCompile {
	return fmt.Errorf("failed to compile expression %q: %w", expr, err)
}

type ErrEvaluation = error

func NewEvaluationError(expr string, err error) ErrEvaluation {
	return fmt.Errorf("failed to evaluate expression %q: %w", expr, err)
}

type ErrType = error

func NewTypeError(expr, want string, got any) ErrType {
	return fmt.Errorf("expression %q: expected %s result, got %T", expr, want, got)
}
