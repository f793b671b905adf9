package validator

import (
	"context"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// valuer is implemented by records that can expose all their values to expressions.
type valuer interface {
	Values() map[string]any
}

// Expr fails unless expression evaluates to true.
// The expression sees the field value as `value`, the field name as `field`
// and, when the record exposes them, all record values as `record`.
// It is compiled once and panics on a syntax error, like Format.
func Expr(expression string, opts ...Option) Func {
	program := mustCompileExpr(expression)
	o := newOptions("is invalid", opts)

	return func(ctx context.Context, rec Record, field string) string {
		v := rec.Get(field)
		if o.allowNull && isNil(v) {
			return ""
		}
		if o.allowBlank && isEmptyString(v) {
			return ""
		}

		env := map[string]any{
			"value": v,
			"field": field,
		}
		if r, ok := rec.(valuer); ok {
			env["record"] = r.Values()
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return o.message
		}
		if ok, _ := out.(bool); ok {
			return ""
		}
		return o.message
	}
}

func mustCompileExpr(expression string) *vm.Program {
	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		panic(err)
	}
	return program
}
