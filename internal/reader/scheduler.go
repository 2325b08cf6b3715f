package reader

import "time"

// Task is a deferred action that has been scheduled but may not have run yet
type Task interface {
	// Cancel stops the task. It returns false if the task already ran or was cancelled.
	Cancel() bool
}

// Scheduler runs fn once after delay. Implementations must run fn on the same
// goroutine that drives the controller.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Task
}
