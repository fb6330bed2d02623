package asyncscope

// The common set of values for callbacks that are specific to a single task
type TaskMetadata struct {
	// The name of the runner (Group or Pool) that forked the task
	RunnerName string
	// The index of the task, in the order the tasks started running
	TaskIndex uint64
	// The scope the task runs within. Its parent is the scope that was
	// ambient when the task was forked.
	Scope *Scope
	// The status tracker for the runner
	TaskStatusTracker *TaskStatusTracker
}

type TaskErrorCallbackInput struct {
	*TaskMetadata
	// The error that was returned by the task, or that a panic was converted into
	Err error
}

type TaskSuccessCallbackInput struct {
	*TaskMetadata
}
