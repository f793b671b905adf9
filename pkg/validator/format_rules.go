package validator

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Format fails unless the value is a string matching pattern.
// The pattern is compiled once; an invalid pattern panics at construction.
func Format(pattern string, opts ...Option) Func {
	return FormatRegexp(regexp.MustCompile(pattern), opts...)
}

// FormatRegexp is Format with a precompiled expression.
func FormatRegexp(re *regexp.Regexp, opts ...Option) Func {
	o := newOptions("is invalid", opts)
	return build(o, isEmptyString, func(_ context.Context, _ Record, v any) bool {
		s, ok := stringValue(v)
		return ok && re.MatchString(s)
	})
}

// UUID fails unless the value is a uuid.UUID or a string in canonical UUID form.
func UUID(opts ...Option) Func {
	o := newOptions("must be a valid UUID", opts)
	return build(o, isEmptyString, func(_ context.Context, _ Record, v any) bool {
		switch t := v.(type) {
		case uuid.UUID:
			return true
		case string:
			// Fast rejection before parsing; uuid.Parse also accepts urn and braced forms.
			if len(t) != 36 || strings.Count(t, "-") != 4 {
				return false
			}
			_, err := uuid.Parse(t)
			return err == nil
		}
		return false
	})
}
