// Package activerecord is an active-record style mapper over a fluent,
// filter-capable data store adapter.
//
// A Model describes one table: its ordered field schema, per-field validators
// and the adapter client it talks to. Records created from a Model carry their
// own field values and persistence state, and Scopes built from a Model
// accumulate filters, ordering, projection and bulk mutations until they are
// executed.
//
// # Models
//
//	var Products = activerecord.NewModel("products",
//	    activerecord.Fields(
//	        "id", activerecord.Serial,
//	        "name", activerecord.String,
//	        "price", activerecord.Number,
//	    ),
//	    activerecord.WithValidation("name", validator.Required()),
//	    activerecord.WithClient(client),
//	)
//
// Without WithClient a model uses the process-wide client installed by
// SetDefaultClient.
//
// # Records
//
//	p := Products.New(map[string]any{"name": "Shirt", "price": 10})
//	res, err := p.Save(ctx)   // insert, adopts the returned id
//	if err != nil { ... }     // adapter failure
//	if !res.Valid { ... }     // res.Errors["name"] lists messages
//
//	_ = p.Set("price", 12)    // marks the record changed
//	_, err = p.Save(ctx)      // update matched by id
//
// Validation failures are results, not errors. Save never touches the adapter
// when validation fails. Delete is not gated by validation and leaves the
// change flags as they are; IsDeleted reports a successful delete.
//
// # Scopes
//
//	open, err := Products.
//	    Where("status", "open").
//	    Where("price", ">", 10).
//	    Order("price desc").
//	    Limit(20).
//	    Load(ctx)
//
//	_, err = Products.Where(map[string]any{"status": "open"}).
//	    Update(map[string]any{"status": "closed"}).
//	    Execute(ctx)
//
// A Scope executes only when one of its terminal methods is called (Execute,
// Run, Load or Take) and every execution is exactly one adapter round trip.
// Filters accumulate with AND semantics; symbolic operators (=, !=, >, >=, <,
// <=) are translated to the adapter's eq, neq, gt, gte, lt and lte, anything
// else is passed through as a native operator name.
//
// # Errors
//
// Get and GetBy return ErrRecordNotFound when nothing matches. Builder misuse
// (bad Where/Order/Select arguments) is reported by the terminal method.
// Adapter errors are returned unchanged.
package activerecord
