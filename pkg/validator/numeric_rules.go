package validator

import (
	"context"
	"fmt"
)

// Numeric fails unless the value has a numeric type.
// AllowBlank bypasses any falsy value; AllowZero bypasses a numeric zero.
// Numeric strings such as "0" still fail.
func Numeric(opts ...Option) Func {
	o := newOptions("is not a number", opts)
	return build(o, isFalsy, func(_ context.Context, _ Record, v any) bool {
		if o.allowZero && isZero(v) {
			return true
		}
		return isNumeric(v)
	})
}

// Min fails unless the value is a number greater than or equal to min.
func Min(min float64, opts ...Option) Func {
	o := newOptions(fmt.Sprintf("must be at least %v", min), opts)
	return build(o, isEmptyString, func(_ context.Context, _ Record, v any) bool {
		f, ok := toFloat(v)
		return ok && f >= min
	})
}

// Max fails unless the value is a number less than or equal to max.
func Max(max float64, opts ...Option) Func {
	o := newOptions(fmt.Sprintf("must be at most %v", max), opts)
	return build(o, isEmptyString, func(_ context.Context, _ Record, v any) bool {
		f, ok := toFloat(v)
		return ok && f <= max
	})
}
