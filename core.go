package asyncscope

var (
	// The concurrency limit used when a runner input does not set one.
	// Values <= 0 mean no limit.
	DefaultMaxConcurrency int = 0
	DefaultGroupName          = "group"
	DefaultPoolName           = "pool"
)

type runnerInput struct {
	// OPTIONAL. A name that can be used in logs for this runner, and for
	// identifying it in callback inputs.
	Name string

	// OPTIONAL. The maximum number of tasks that may run at once. Forking
	// blocks while the limit is reached. Defaults to DefaultMaxConcurrency.
	MaxConcurrency int

	// OPTIONAL. A function to call when a task returns an error or panics.
	// The error it returns replaces the task's error; returning nil swallows it.
	TaskErrorCallback func(input *TaskErrorCallbackInput) error

	// OPTIONAL. A function to call when a task returns without error. An
	// error it returns is treated as the task's error.
	TaskSuccessCallback func(input *TaskSuccessCallbackInput) error

	// OPTIONAL. Whether the first task error cancels the context of the
	// remaining tasks. Only used by Pool, since a Group always does this.
	CancelOnError bool
}

type GroupInput runnerInput

type PoolInput runnerInput

func zeroDefault[T comparable](val T, dflt T) T {
	var zero T
	if val == zero {
		return dflt
	}
	return val
}
