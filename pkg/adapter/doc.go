// Package adapter defines the contract between records and a tabular data store.
//
// A Client hands out a fluent Builder per table. Builder calls accumulate a
// verb (Select, Insert, Update, Delete), filters, ordering, a row limit and the
// single-row flag; Execute sends the whole chain to the store in one round trip
// and returns a Response whose Data is a Row, a []Row or nil.
//
// Concrete stores rarely need to implement Builder themselves. Chain records
// the fluent calls into a Plan and hands it to an Executor, so an adapter only
// has to translate a Plan into its native query:
//
//	type store struct{ /* driver handle */ }
//
//	func (s *store) From(table string) adapter.Builder {
//	    return adapter.NewChain(table, adapter.ExecutorFunc(s.execute))
//	}
//
//	func (s *store) execute(ctx context.Context, p adapter.Plan) (adapter.Response, error) {
//	    // translate p, run it, map rows back
//	}
//
// Native operators beyond the comparison set (like, ilike, in, is) travel
// through Builder.Filter; adapters reject operators they do not know with
// ErrUnsupportedOperator.
package adapter
