package platform

import (
	"time"

	"pomodoro/internal/core/countdown"
)

// DispatchScheduler schedules one-shot callbacks with time.AfterFunc and hands
// them to Dispatch when they fire, so they run on the caller's event loop
// (fyne.Do for the desktop window, Program.Send for the terminal).
type DispatchScheduler struct {
	Dispatch func(func())
}

// NewDispatchScheduler creates a scheduler delivering through dispatch.
// A nil dispatch runs callbacks on the timer goroutine.
func NewDispatchScheduler(dispatch func(func())) *DispatchScheduler {
	return &DispatchScheduler{Dispatch: dispatch}
}

// AfterFunc implements countdown.Scheduler.
func (scheduler *DispatchScheduler) AfterFunc(d time.Duration, f func()) countdown.Timer {
	dispatch := scheduler.Dispatch
	return time.AfterFunc(d, func() {
		if dispatch == nil {
			f()
			return
		}
		dispatch(f)
	})
}
