package validator

import "context"

type options struct {
	allowNull  bool
	allowBlank bool
	allowZero  bool
	message    string
}

// Option configures a validator built by one of the factories.
type Option func(*options)

// AllowNull makes the validator pass when the value is nil.
func AllowNull() Option {
	return func(o *options) { o.allowNull = true }
}

// AllowBlank makes the validator pass when the value is blank.
func AllowBlank() Option {
	return func(o *options) { o.allowBlank = true }
}

// AllowZero makes Numeric pass for a numeric zero.
func AllowZero() Option {
	return func(o *options) { o.allowZero = true }
}

// Message overrides the default error message. Empty messages are ignored.
func Message(msg string) Option {
	return func(o *options) {
		if msg != "" {
			o.message = msg
		}
	}
}

func newOptions(defaultMessage string, opts []Option) options {
	o := options{message: defaultMessage}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// build wraps check with the shared bypass handling.
// blank decides what AllowBlank treats as blank for this rule.
func build(o options, blank func(any) bool, check func(ctx context.Context, rec Record, v any) bool) Func {
	return func(ctx context.Context, rec Record, field string) string {
		v := rec.Get(field)
		if o.allowNull && isNil(v) {
			return ""
		}
		if o.allowBlank && blank(v) {
			return ""
		}
		if check(ctx, rec, v) {
			return ""
		}
		return o.message
	}
}
