// Package validator provides field-level validation for schema-bound records.
//
// A validator is a plain function value of type Func. It receives the record
// being validated and the name of the field it is attached to, and returns an
// empty string when the value is acceptable or a human readable message when it
// is not. Factories such as Required, Numeric, Type, Format and Length build
// the common cases; any function with the same signature is a custom validator
// and is treated exactly the same way.
//
// # Options
//
// Every factory accepts the same options:
//   - AllowNull  – pass immediately when the value is nil
//   - AllowBlank – pass immediately when the value is blank ("" for most rules,
//     any falsy value for Numeric and Type)
//   - Message    – replace the default error message
//
// Numeric additionally understands AllowZero.
//
// # Usage
//
//	rules := []validator.FieldRules{
//	    {Field: "name", Funcs: []validator.Func{validator.Required()}},
//	    {Field: "sku", Funcs: []validator.Func{
//	        validator.Required(),
//	        validator.Length(8, validator.Message("must be 8 characters")),
//	    }},
//	}
//
//	res := validator.Validate(ctx, record, rules)
//	if !res.Valid {
//	    // res.Errors["sku"] holds messages in declaration order
//	}
//
// # Concurrency
//
// Validate runs every validator in its own goroutine and waits for all of them
// before aggregating. Validators must not depend on each other and must only
// read the record. Messages for one field keep the order in which the
// validators were declared regardless of completion order.
package validator
