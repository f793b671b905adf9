package validator

import (
	"context"
	"fmt"
	"reflect"
)

// OneOf fails unless the value equals one of allowed.
func OneOf(allowed []any, opts ...Option) Func {
	o := newOptions(fmt.Sprintf("must be one of: %v", allowed), opts)
	return build(o, isEmptyString, func(_ context.Context, _ Record, v any) bool {
		for _, a := range allowed {
			if reflect.DeepEqual(a, v) {
				return true
			}
		}
		return false
	})
}
