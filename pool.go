package asyncscope

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Pool forks tasks into child scopes like Group does, but collects the
// errors of every task instead of only the first one.
type Pool struct {
	pool     *pool.ContextPool
	settings *taskSettings
}

// NewPool returns a Pool whose tasks are cancelled through ctx (and, with
// CancelOnError, through the first task error).
func NewPool(ctx context.Context, input PoolInput) *Pool {
	if ctx == nil {
		ctx = context.Background()
	}
	ri := runnerInput(input)
	settings := newTaskSettings(&ri, DefaultPoolName)

	p := pool.New()
	if settings.input.MaxConcurrency > 0 {
		p = p.WithMaxGoroutines(settings.input.MaxConcurrency)
	}
	ctxPool := p.WithContext(ctx)
	if settings.input.CancelOnError {
		ctxPool = ctxPool.WithCancelOnError()
	}
	return &Pool{
		pool:     ctxPool,
		settings: settings,
	}
}

// Go forks fn. fn runs within a new scope whose parent is the scope ambient
// in ctx at the time of this call.
//
// ctx only contributes values to the task. The task's cancellation comes from
// the pool's context, so cancelling ctx does not cancel the task.
func (p *Pool) Go(ctx context.Context, fn func(ctx context.Context) error) {
	p.pool.Go(getTask(p.settings, ctx, fn))
}

// Wait blocks until every forked task has returned. The errors of all
// failed tasks are joined into the returned error.
func (p *Pool) Wait() error {
	return p.pool.Wait()
}

// Status returns the tracker counting the pool's tasks by state.
func (p *Pool) Status() *TaskStatusTracker {
	return p.settings.statusTracker
}
