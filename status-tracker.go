package asyncscope

import (
	"fmt"

	"go.uber.org/atomic"
)

type taskStatus int

const (
	Running taskStatus = iota
	Errored
	Panicked
	Finished
)

func (s taskStatus) String() string {
	switch s {
	case Running:
		return "Running"
	case Errored:
		return "Errored"
	case Panicked:
		return "Panicked"
	case Finished:
		return "Finished"
	default:
		panic(fmt.Errorf("unknown taskStatus: %d", s))
	}
}

// TaskStatusTracker counts the tasks forked by a Group or Pool by state.
type TaskStatusTracker struct {
	// Internal use only. The name of the runner it belongs to.
	runnerName string
	// Internal use only. The number of tasks ever forked.
	numTasksForked atomic.Int32
	// Internal use only. A counter for the number of tasks currently running.
	numTasksRunning atomic.Int32
	// Internal use only. A counter for the number of tasks that returned an error.
	numTasksErrored atomic.Int32
	// Internal use only. A counter for the number of tasks that panicked.
	numTasksPanicked atomic.Int32
	// Internal use only. A counter for the number of tasks that returned without error.
	numTasksFinished atomic.Int32
}

func newTaskStatusTracker(runnerName string) *TaskStatusTracker {
	return &TaskStatusTracker{
		runnerName: runnerName,
	}
}

func (tst *TaskStatusTracker) taskStarted() {
	tst.numTasksForked.Inc()
	tst.numTasksRunning.Inc()
}

// Moves a task out of the Running state. Returns true if it was the last
// running task.
func (tst *TaskStatusTracker) taskExited(newStatus taskStatus) (isLastTask bool) {
	switch newStatus {
	case Errored:
		tst.numTasksErrored.Inc()
	case Panicked:
		tst.numTasksPanicked.Inc()
	case Finished:
		tst.numTasksFinished.Inc()
	default:
		panic(fmt.Errorf("cannot exit a task into state %s", newStatus.String()))
	}
	return tst.numTasksRunning.Dec() == 0
}

func (tst *TaskStatusTracker) GetRunnerName() string {
	return tst.runnerName
}
func (tst *TaskStatusTracker) GetNumTasksForked() int32 {
	return tst.numTasksForked.Load()
}
func (tst *TaskStatusTracker) GetNumTasksRunning() int32 {
	return tst.numTasksRunning.Load()
}
func (tst *TaskStatusTracker) GetNumTasksErrored() int32 {
	return tst.numTasksErrored.Load()
}
func (tst *TaskStatusTracker) GetNumTasksPanicked() int32 {
	return tst.numTasksPanicked.Load()
}
func (tst *TaskStatusTracker) GetNumTasksFinished() int32 {
	return tst.numTasksFinished.Load()
}
