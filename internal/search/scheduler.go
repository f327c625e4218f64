package search

import "time"

// Timer is a pending call created by a Scheduler.
type Timer interface {
	// Stop prevents the call from running. It reports whether the call was
	// still pending.
	Stop() bool
}

// Scheduler creates delayed calls. Tests substitute a manual scheduler to
// fire debounce and blur timers deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemScheduler struct{}

func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler runs calls on time.AfterFunc goroutines.
var SystemScheduler Scheduler = systemScheduler{}
