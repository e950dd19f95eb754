package countdown

import (
	"time"

	"pomodoro/internal/core/model"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs a callback once after a delay. Implementations must deliver
// callbacks on the same event loop that drives the engine's other operations.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// CuePlayer plays a sound cue without blocking the caller.
//
//go:generate mockgen -destination=mocks/cue_player_mock.go -package=mocks pomodoro/internal/core/countdown CuePlayer
type CuePlayer interface {
	Play(cue model.Cue)
}

type silentPlayer struct{}

func (silentPlayer) Play(model.Cue) {}
