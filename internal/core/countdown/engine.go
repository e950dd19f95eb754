// Package countdown implements the Pomodoro timer state machine.
//
// The engine has two states, Idle and Running. While running it owns at most
// one pending tick scheduled through the injected Scheduler. Every tick is
// tagged with the generation it was scheduled under; stopping, resetting or
// rescheduling bumps the generation, so a callback that was already in flight
// when its timer was cancelled is dropped on delivery.
//
// Countdown continues while the remaining value is >= 0, which means the
// display holds 00:00 for one extra tick before the interval completes.
package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"pomodoro/internal/core/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrUnknownMode indicates a mode outside model.Modes.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrClosed indicates an operation on a closed Engine.
	ErrClosed = errors.New("engine closed")
)

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Logger       *zap.Logger
}

// Engine is the Pomodoro countdown state machine.
type Engine struct {
	mu         sync.Mutex
	options    Config
	logger     *zap.Logger
	scheduler  Scheduler
	cues       CuePlayer
	durations  model.Durations
	mode       model.Mode
	remaining  int
	running    bool
	pending    Timer
	generation uint64
	runID      string
	events     []chan Event
	closed     bool
}

// New creates an idle Engine in Pomodoro mode.
func New(durations model.Durations, scheduler Scheduler, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	engine := &Engine{
		options:   options,
		logger:    options.Logger,
		scheduler: scheduler,
		cues:      silentPlayer{},
		durations: durations.Normalize(),
		mode:      model.ModePomodoro,
	}
	engine.resetCountdownLocked()
	return engine
}

// SetCuePlayer injects the sound collaborator.
func (engine *Engine) SetCuePlayer(player CuePlayer) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if player == nil {
		player = silentPlayer{}
	}
	engine.cues = player
}

// Subscribe registers a new observer channel.
// Sends never block; a full channel misses the event.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	if engine.closed {
		close(ch)
	} else {
		engine.events = append(engine.events, ch)
	}
	engine.mu.Unlock()
	return ch
}

// Close cancels any pending tick and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.running = false
	engine.cancelPendingLocked()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// ToggleStart starts an idle countdown or stops a running one.
// It is a no-op once the engine is closed.
func (engine *Engine) ToggleStart() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	engine.cues.Play(model.CueClick)
	engine.emitLocked(engine.eventLocked(EventInteraction))

	if engine.running {
		engine.cancelPendingLocked()
		engine.running = false
		engine.logger.Debug("countdown stopped",
			zap.String("mode", string(engine.mode)),
			zap.Int("remaining", engine.remaining),
			zap.String("run", engine.runID))
		engine.emitLocked(engine.eventLocked(EventStateChange))
		return
	}

	engine.cancelPendingLocked()
	engine.running = true
	engine.logger.Debug("countdown started",
		zap.String("mode", string(engine.mode)),
		zap.Int("remaining", engine.remaining),
		zap.String("run", engine.runID))
	engine.emitLocked(engine.eventLocked(EventStateChange))
	engine.continueLocked()
}

// OnTick advances a running countdown by one second. It is a no-op while idle.
func (engine *Engine) OnTick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.tickLocked()
}

// SelectMode switches the active mode and resets the countdown to its
// configured duration. The engine is left idle.
func (engine *Engine) SelectMode(mode model.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("select mode %q: %w", mode, ErrUnknownMode)
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return fmt.Errorf("select mode %q: %w", mode, ErrClosed)
	}
	engine.cancelPendingLocked()
	engine.mode = mode
	engine.resetLocked()
	engine.logger.Debug("mode selected",
		zap.String("mode", string(mode)),
		zap.Int("remaining", engine.remaining))
	return nil
}

// SetConfiguredDuration validates raw minutes and stores them for mode.
// When mode is active the countdown is reset as in SelectMode; otherwise the
// new value applies the next time mode is selected.
func (engine *Engine) SetConfiguredDuration(mode model.Mode, raw string) (DurationUpdate, error) {
	if !mode.Valid() {
		return DurationUpdate{}, fmt.Errorf("set duration %q: %w", mode, ErrUnknownMode)
	}
	minutes, clamped, err := model.ParseMinutes(raw)
	if err != nil {
		return DurationUpdate{}, fmt.Errorf("set %s duration: %w", mode.Label(), err)
	}

	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return DurationUpdate{}, fmt.Errorf("set %s duration: %w", mode.Label(), ErrClosed)
	}

	engine.durations = engine.durations.With(mode, minutes)
	update := DurationUpdate{Mode: mode, Minutes: minutes, Clamped: clamped}

	event := engine.eventLocked(EventDurationChange)
	event.DurationMode = mode
	event.Minutes = minutes
	event.Clamped = clamped
	engine.emitLocked(event)

	engine.logger.Info("duration configured",
		zap.String("mode", string(mode)),
		zap.Int("minutes", minutes),
		zap.Bool("clamped", clamped))

	if mode == engine.mode {
		engine.resetLocked()
	}
	return update, nil
}

// FormatDisplay returns the remaining time as MM:SS.
func (engine *Engine) FormatDisplay() string {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return FormatRemaining(engine.remaining)
}

// Mode returns the active mode.
func (engine *Engine) Mode() model.Mode {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.mode
}

// Remaining returns the remaining seconds of the current run.
func (engine *Engine) Remaining() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining
}

// Running reports whether ticks are being scheduled.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

// Durations returns the configured durations.
func (engine *Engine) Durations() model.Durations {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.durations
}

// Snapshot returns a consistent copy of the engine state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return Snapshot{
		Mode:      engine.mode,
		Running:   engine.running,
		Remaining: engine.remaining,
		Display:   FormatRemaining(engine.remaining),
		Durations: engine.durations,
		RunID:     engine.runID,
	}
}

// FormatRemaining renders seconds as zero-padded MM:SS; negative values render as 00:00.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (engine *Engine) fire(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if generation != engine.generation {
		return
	}
	engine.pending = nil
	engine.tickLocked()
}

func (engine *Engine) tickLocked() {
	if !engine.running {
		return
	}
	engine.remaining--
	engine.continueLocked()
}

func (engine *Engine) continueLocked() {
	if engine.remaining >= 0 {
		engine.scheduleLocked()
		engine.emitLocked(engine.eventLocked(EventProgress))
		return
	}

	engine.running = false
	engine.cancelPendingLocked()
	engine.cues.Play(model.CueFinish)
	engine.emitLocked(engine.eventLocked(EventIntervalCompleted))
	engine.logger.Info("interval completed",
		zap.String("mode", string(engine.mode)),
		zap.Int("minutes", engine.durations.Minutes(engine.mode)),
		zap.String("run", engine.runID))

	engine.resetCountdownLocked()
	engine.emitLocked(engine.eventLocked(EventStateChange))
}

func (engine *Engine) resetLocked() {
	engine.cancelPendingLocked()
	engine.running = false
	engine.resetCountdownLocked()
	engine.emitLocked(engine.eventLocked(EventStateChange))
}

func (engine *Engine) resetCountdownLocked() {
	engine.remaining = engine.durations.Minutes(engine.mode) * 60
	engine.runID = uuid.NewString()
}

func (engine *Engine) scheduleLocked() {
	engine.cancelPendingLocked()
	if engine.scheduler == nil {
		return
	}
	generation := engine.generation
	engine.pending = engine.scheduler.AfterFunc(engine.options.TickInterval, func() {
		engine.fire(generation)
	})
}

func (engine *Engine) cancelPendingLocked() {
	if engine.pending != nil {
		engine.pending.Stop()
		engine.pending = nil
	}
	engine.generation++
}

func (engine *Engine) eventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Mode:      engine.mode,
		Running:   engine.running,
		Remaining: engine.remaining,
		Display:   FormatRemaining(engine.remaining),
		RunID:     engine.runID,
		At:        time.Now(),
	}
}

func (engine *Engine) emitLocked(event Event) {
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
