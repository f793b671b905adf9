package validator

import (
	"context"
	"fmt"
)

// Type fails unless the value's runtime type equals expected.
// expected is either a category reported by TypeOf ("string", "number",
// "boolean", "time", "uuid", "array", "object") or an exact Go type name such
// as "int64" or "[]string".
func Type(expected string, opts ...Option) Func {
	o := newOptions(fmt.Sprintf("must be a %s", expected), opts)
	return build(o, isFalsy, func(_ context.Context, _ Record, v any) bool {
		if TypeOf(v) == expected {
			return true
		}
		return v != nil && fmt.Sprintf("%T", v) == expected
	})
}
