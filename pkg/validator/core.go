package validator

import (
	"context"

	"github.com/dmitrymomot/activerecord/pkg/async"
)

// Record is the read-only view of a record that validators receive.
type Record interface {
	Get(field string) any
}

// Func validates one field of a record.
// It returns an empty string when the value is valid and an error message otherwise.
type Func func(ctx context.Context, rec Record, field string) string

// FieldRules binds an ordered list of validators to a field.
type FieldRules struct {
	Field string
	Funcs []Func
}

// Result is the outcome of validating a record.
// Valid is true exactly when Errors is empty.
type Result struct {
	Valid  bool
	Errors Errors
}

// Valid returns a passing Result with an empty, non-nil Errors map.
func Valid() Result {
	return Result{Valid: true, Errors: Errors{}}
}

// NewResult builds a Result from errs keeping the Valid invariant.
func NewResult(errs Errors) Result {
	if errs == nil {
		errs = Errors{}
	}
	return Result{Valid: errs.IsEmpty(), Errors: errs}
}

// Err converts a failed Result into ValidationErrors. It returns nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return r.Errors.ValidationErrors()
}

type outcome struct {
	index   int
	message string
}

// Validate runs all validators concurrently against rec and aggregates their messages.
// Every validator runs to completion even if ctx is canceled meanwhile.
func Validate(ctx context.Context, rec Record, rules []FieldRules) Result {
	ctx = context.WithoutCancel(ctx)

	var (
		fields  []string
		futures []*async.Future[outcome]
	)
	for _, fr := range rules {
		for _, fn := range fr.Funcs {
			if fn == nil {
				continue
			}
			field := fr.Field
			idx := len(fields)
			fields = append(fields, field)
			futures = append(futures, async.Go(ctx, func(ctx context.Context) (outcome, error) {
				return outcome{index: idx, message: fn(ctx, rec, field)}, nil
			}))
		}
	}

	if len(futures) == 0 {
		return Valid()
	}

	outcomes, _ := async.Join(futures...)

	errs := Errors{}
	for _, o := range outcomes {
		if o.message != "" {
			errs.Add(fields[o.index], o.message)
		}
	}

	return NewResult(errs)
}
