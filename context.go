package asyncscope

import "context"

// This is a context that gets its cancellation from the runner that executes
// a forked task, but its values (and so its ambient scope) from the context
// that the task was forked from.
type forkContext struct {
	context.Context
	ForkedFrom context.Context
}

func newForkContext(runnerCtx context.Context, forkedFrom context.Context) context.Context {
	return &forkContext{
		Context:    runnerCtx,
		ForkedFrom: forkedFrom,
	}
}

func (fc *forkContext) Value(key any) any {
	return fc.ForkedFrom.Value(key)
}
