package validator

import (
	"context"
	"fmt"
)

// Length fails unless the value's length equals exactly n.
// Strings are measured in runes; slices, arrays and maps by element count.
func Length(n int, opts ...Option) Func {
	strMsg := newOptions(fmt.Sprintf("must be exactly %d characters long", n), opts)
	colMsg := newOptions(fmt.Sprintf("must contain exactly %d items", n), opts)

	return func(_ context.Context, rec Record, field string) string {
		v := rec.Get(field)
		if strMsg.allowNull && isNil(v) {
			return ""
		}
		if strMsg.allowBlank && isEmptyString(v) {
			return ""
		}

		l, collection, ok := lengthOf(v)
		if ok && l == n {
			return ""
		}
		if collection {
			return colMsg.message
		}
		return strMsg.message
	}
}
