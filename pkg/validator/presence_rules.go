package validator

import "context"

// Required fails when the value is nil.
func Required(opts ...Option) Func {
	o := newOptions("is required", opts)
	return build(o, isEmptyString, func(_ context.Context, _ Record, v any) bool {
		return !isNil(v)
	})
}
