// Package tracing turns bus transactions into timed tasks and hands them to
// tracers.
package tracing

import "github.com/sarchlab/sramcheck/timing"

// A Task is a task
type Task struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	What      string            `json:"what"`
	Where     string            `json:"where"`
	StartTime timing.VTimeInSec `json:"start_time"`
	EndTime   timing.VTimeInSec `json:"end_time"`
	Bytes     int               `json:"bytes"`
	Detail    interface{}       `json:"-"`
}

// TaskFilter is a function that can filter interesting tasks. If this function
// returns true, the task is considered useful.
type TaskFilter func(t Task) bool

// AllTasks accepts every task.
func AllTasks(Task) bool { return true }

// KindIs accepts the tasks of one kind.
func KindIs(kind string) TaskFilter {
	return func(t Task) bool { return t.Kind == kind }
}

// A Tracer receives tasks when they start and when they end.
type Tracer interface {
	StartTask(task Task)
	EndTask(task Task)
}
