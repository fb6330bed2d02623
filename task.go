package asyncscope

import (
	"context"
	"runtime/debug"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

type taskSettings struct {
	input            *runnerInput
	statusTracker    *TaskStatusTracker
	taskIndexCounter *atomic.Uint64
}

func newTaskSettings(input *runnerInput, defaultName string) *taskSettings {
	input.Name = zeroDefault(input.Name, defaultName)
	input.MaxConcurrency = zeroDefault(input.MaxConcurrency, DefaultMaxConcurrency)
	return &taskSettings{
		input:            input,
		statusTracker:    newTaskStatusTracker(input.Name),
		taskIndexCounter: atomic.NewUint64(0),
	}
}

// getTask forks fn off of forkedFrom. The child scope is created right here,
// at fork time, so the task's ancestry is whatever scope is ambient in
// forkedFrom now, not whatever is ambient when the runner gets to the task.
// The returned function is run by the runner with the runner's context, which
// only contributes cancellation.
func getTask(
	settings *taskSettings,
	forkedFrom context.Context,
	fn func(ctx context.Context) error,
) func(runnerCtx context.Context) error {

	scope := NewScope(forkedFrom)

	return func(runnerCtx context.Context) (err error) {
		if forkedFrom == nil {
			forkedFrom = runnerCtx
		}

		metadata := &TaskMetadata{
			RunnerName:        settings.input.Name,
			TaskIndex:         settings.taskIndexCounter.Inc() - 1,
			Scope:             scope,
			TaskStatusTracker: settings.statusTracker,
		}

		settings.statusTracker.taskStarted()
		log().Debug("forked task",
			"runner", metadata.RunnerName,
			"task", metadata.TaskIndex,
			"scope_depth", scope.Depth(),
		)

		panicked := false
		defer func() {
			// Convert panics into errors
			if r := recover(); r != nil {
				panicked = true
				err = errors.Errorf("%v: %s", r, string(debug.Stack()))
				log().Warn("task panicked",
					"runner", metadata.RunnerName,
					"task", metadata.TaskIndex,
					"panic", r,
				)
			}
			err = exitTask(settings, metadata, err, panicked)
		}()

		return scope.RunWithin(newForkContext(runnerCtx, forkedFrom), fn)
	}
}

func exitTask(settings *taskSettings, metadata *TaskMetadata, err error, panicked bool) error {
	if err == nil && settings.input.TaskSuccessCallback != nil {
		err = settings.input.TaskSuccessCallback(&TaskSuccessCallbackInput{
			TaskMetadata: metadata,
		})
	}

	if err != nil {
		log().Debug("task failed",
			"runner", metadata.RunnerName,
			"task", metadata.TaskIndex,
			"error", err,
		)
		if settings.input.TaskErrorCallback != nil {
			err = settings.input.TaskErrorCallback(&TaskErrorCallbackInput{
				TaskMetadata: metadata,
				Err:          err,
			})
		}
	}

	status := Finished
	switch {
	case panicked:
		status = Panicked
	case err != nil:
		status = Errored
	}
	if settings.statusTracker.taskExited(status) {
		log().Debug("last running task exited",
			"runner", metadata.RunnerName,
			"task", metadata.TaskIndex,
			"status", status.String(),
			"forked", settings.statusTracker.GetNumTasksForked(),
		)
	}
	return err
}
