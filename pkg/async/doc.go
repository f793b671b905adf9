// Package async provides a small generic Future used to run work concurrently
// and collect its result later.
//
// Go starts a function in its own goroutine and returns a *Future immediately.
// The caller waits with Await, bounds the wait with AwaitWithTimeout or polls
// with IsComplete. Join waits for a group of futures and reports every failure,
// WaitAll stops at the first one.
//
// # Usage
//
//	f := async.Go(ctx, func(ctx context.Context) (int, error) {
//	    return compute(ctx)
//	})
//
//	// do other work
//	n, err := f.Await()
//
// A context canceled before the goroutine starts completes the Future with the
// context error. Cancellation after that point is up to the function itself.
package async
