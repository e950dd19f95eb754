package countdown

import "time"

// fakeScheduler is a manual clock. Callbacks only run from Advance or deliver,
// never from inside AfterFunc.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (timer *fakeTimer) Stop() bool {
	if timer.stopped || timer.fired {
		return false
	}
	timer.stopped = true
	return true
}

// deliver runs the callback regardless of Stop, modelling a tick that was
// already queued on the event loop when it was cancelled.
func (timer *fakeTimer) deliver() {
	timer.fired = true
	timer.f()
}

func (scheduler *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	timer := &fakeTimer{at: scheduler.now + d, delay: d, f: f}
	scheduler.timers = append(scheduler.timers, timer)
	return timer
}

// Advance moves the clock forward, firing due timers in order.
func (scheduler *fakeScheduler) Advance(d time.Duration) {
	target := scheduler.now + d
	for {
		next := scheduler.nextDue(target)
		if next == nil {
			break
		}
		scheduler.now = next.at
		next.deliver()
	}
	scheduler.now = target
}

func (scheduler *fakeScheduler) nextDue(target time.Duration) *fakeTimer {
	var next *fakeTimer
	for _, timer := range scheduler.timers {
		if timer.stopped || timer.fired || timer.at > target {
			continue
		}
		if next == nil || timer.at < next.at {
			next = timer
		}
	}
	return next
}

// Active returns the number of timers that are neither stopped nor fired.
func (scheduler *fakeScheduler) Active() int {
	count := 0
	for _, timer := range scheduler.timers {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (scheduler *fakeScheduler) last() *fakeTimer {
	if len(scheduler.timers) == 0 {
		return nil
	}
	return scheduler.timers[len(scheduler.timers)-1]
}
