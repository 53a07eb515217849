package seeder

import "context"

// Future is the deferred result of SeedAsync.
type Future[R any] struct {
	done chan struct{}
	res  R
	err  error
}

// SeedAsync starts Seed on its own goroutine and returns immediately.
// Cancellation is whatever ctx gives the executor; the core adds none.
func SeedAsync[R any](ctx context.Context, ex Executor[R], m *Mock) *Future[R] {
	f := &Future[R]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.res, f.err = Seed(ctx, ex, m)
	}()
	return f
}

// Done is closed once the result is available.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the seed completes or ctx is done. Giving up on ctx
// does not stop the statement already sent to the database.
func (f *Future[R]) Wait(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.res, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
