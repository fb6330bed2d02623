package asyncscope

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group forks tasks into child scopes and waits for them. The first task to
// fail cancels the context of the others, and its error is returned by Wait.
type Group struct {
	errGroup *errgroup.Group
	ctx      context.Context
	settings *taskSettings
}

// NewGroup returns a new Group and the context its tasks are cancelled
// through. The returned context is cancelled when a task fails or when Wait
// returns.
func NewGroup(ctx context.Context, input GroupInput) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	ri := runnerInput(input)
	settings := newTaskSettings(&ri, DefaultGroupName)

	errGroup, groupCtx := errgroup.WithContext(ctx)
	if settings.input.MaxConcurrency > 0 {
		errGroup.SetLimit(settings.input.MaxConcurrency)
	}
	return &Group{
		errGroup: errGroup,
		ctx:      groupCtx,
		settings: settings,
	}, groupCtx
}

// Go forks fn. fn runs within a new scope whose parent is the scope ambient
// in ctx at the time of this call. If the group has a concurrency limit, Go
// blocks until the task can start.
//
// ctx only contributes values to the task. The task's cancellation comes from
// the group's context, so cancelling ctx does not cancel the task.
func (g *Group) Go(ctx context.Context, fn func(ctx context.Context) error) {
	task := getTask(g.settings, ctx, fn)
	g.errGroup.Go(func() error {
		return task(g.ctx)
	})
}

// Wait blocks until every forked task has returned, then returns the first
// error any of them produced.
func (g *Group) Wait() error {
	return g.errGroup.Wait()
}

// Status returns the tracker counting the group's tasks by state.
func (g *Group) Status() *TaskStatusTracker {
	return g.settings.statusTracker
}
