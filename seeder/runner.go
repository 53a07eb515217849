package seeder

import "context"

// Runner seeds a list of mocks one after another against a single executor.
// It is a sequencing helper, not a transaction: every mock is its own unit
// of work and rows already inserted stay inserted when a later mock fails.
type Runner[R any] struct {
	Exec Executor[R]

	// OnSeed, when set, is called after each successful seed.
	OnSeed func(i int, m *Mock, res R)
}

// Run seeds mocks in order. It stops at the first error and returns it
// unchanged; mocks after the failing one are never rendered.
func (r *Runner[R]) Run(ctx context.Context, mocks []*Mock) error {
	for i, m := range mocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := Seed(ctx, r.Exec, m)
		if err != nil {
			return err
		}
		if r.OnSeed != nil {
			r.OnSeed(i, m, res)
		}
	}
	return nil
}

// Run seeds mocks sequentially on ex, stopping at the first failure.
func Run[R any](ctx context.Context, ex Executor[R], mocks ...*Mock) error {
	r := &Runner[R]{Exec: ex}
	return r.Run(ctx, mocks)
}
