package recovery

import "time"

// Task is a scheduled callback that can be cancelled.
type Task interface {
	// Stop cancels the task. It reports false when the task already ran
	// or was stopped.
	Stop() bool
}

// Clock schedules deferred work.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Task
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// SystemClock runs tasks on real timers.
var SystemClock Clock = realClock{}
