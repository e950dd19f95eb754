package platform

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestDispatchSchedulerDeliversThroughDispatch(t *testing.T) {
	dispatched := make(chan func(), 1)
	scheduler := NewDispatchScheduler(func(f func()) {
		dispatched <- f
	})

	fired := make(chan struct{}, 1)
	scheduler.AfterFunc(10*time.Millisecond, func() {
		fired <- struct{}{}
	})

	var callback func()
	select {
	case callback = <-dispatched:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout: callback was not dispatched")
	}

	select {
	case <-fired:
		t.Fatal("callback ran before the event loop executed it")
	default:
	}
	callback()
	select {
	case <-fired:
	default:
		t.Fatal("dispatched callback did not run")
	}
}

func TestDispatchSchedulerStopCancels(t *testing.T) {
	dispatched := make(chan func(), 1)
	scheduler := NewDispatchScheduler(func(f func()) {
		dispatched <- f
	})

	timer := scheduler.AfterFunc(50*time.Millisecond, func() {})
	if !timer.Stop() {
		t.Fatal("Stop should report a pending timer")
	}

	select {
	case <-dispatched:
		t.Fatal("stopped timer was dispatched")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDispatchSchedulerWithoutDispatch(t *testing.T) {
	fired := make(chan struct{})
	NewDispatchScheduler(nil).AfterFunc(time.Millisecond, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout: callback did not run")
	}
}

func TestAcquireSingleInstanceRejectsSecondGuard(t *testing.T) {
	appName := "pomodoro-test-" + t.Name()
	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("port unavailable in this environment: %v", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	if _, err := AcquireSingleInstance(appName); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second acquire: got %v, want ErrAlreadyRunning", err)
	}
	if guard.Address() == "" {
		t.Fatal("guard should report its address")
	}
}

func TestActivateRunningNotifiesGuard(t *testing.T) {
	appName := "pomodoro-test-" + t.Name()
	guard, err := AcquireSingleInstance(appName)
	if err != nil {
		t.Skipf("port unavailable in this environment: %v", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	activated := make(chan struct{}, 1)
	guard.Serve(func() {
		activated <- struct{}{}
	})

	if err := ActivateRunning(appName); err != nil {
		t.Fatalf("ActivateRunning: %v", err)
	}
	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout: running instance was not activated")
	}
}

func TestFallbackConfigDir(t *testing.T) {
	home := filepath.Join("home", "user")
	tests := map[string]string{
		"linux":   filepath.Join(home, ".config"),
		"darwin":  filepath.Join(home, "Library", "Application Support"),
		"windows": filepath.Join(home, "AppData", "Roaming"),
	}
	for goos, want := range tests {
		if got := fallbackConfigDir(goos, home); got != want {
			t.Errorf("fallbackConfigDir(%s): got %q, want %q", goos, got, want)
		}
	}
}
