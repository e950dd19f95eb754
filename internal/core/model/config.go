package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Mode identifies which interval configuration is in effect.
type Mode string

const (
	ModePomodoro   Mode = "pomodoro"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Bounds for a configured duration, in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 999
)

// ErrInvalidDuration indicates duration text that is not a positive integer.
var ErrInvalidDuration = errors.New("invalid duration")

// Modes returns all modes in display order.
func Modes() []Mode {
	return []Mode{ModePomodoro, ModeShortBreak, ModeLongBreak}
}

// Valid reports whether mode is one of the known modes.
func (mode Mode) Valid() bool {
	switch mode {
	case ModePomodoro, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// Label returns the human readable mode name.
func (mode Mode) Label() string {
	switch mode {
	case ModePomodoro:
		return "Pomodoro"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(mode)
	}
}

// Durations holds the configured length of each mode in whole minutes.
type Durations struct {
	Pomodoro   int
	ShortBreak int
	LongBreak  int
}

// DefaultDurations returns the built-in 25/5/15 minute configuration.
func DefaultDurations() Durations {
	return Durations{
		Pomodoro:   25,
		ShortBreak: 5,
		LongBreak:  15,
	}
}

// Minutes returns the configured minutes for mode, or 0 for an unknown mode.
func (durations Durations) Minutes(mode Mode) int {
	switch mode {
	case ModePomodoro:
		return durations.Pomodoro
	case ModeShortBreak:
		return durations.ShortBreak
	case ModeLongBreak:
		return durations.LongBreak
	default:
		return 0
	}
}

// With returns a copy with mode set to minutes.
func (durations Durations) With(mode Mode, minutes int) Durations {
	switch mode {
	case ModePomodoro:
		durations.Pomodoro = minutes
	case ModeShortBreak:
		durations.ShortBreak = minutes
	case ModeLongBreak:
		durations.LongBreak = minutes
	}
	return durations
}

// Normalize clamps every mode into [MinMinutes, MaxMinutes], falling back to
// the default for non-positive values.
func (durations Durations) Normalize() Durations {
	defaults := DefaultDurations()
	for _, mode := range Modes() {
		minutes := durations.Minutes(mode)
		if minutes < MinMinutes {
			minutes = defaults.Minutes(mode)
		}
		if minutes > MaxMinutes {
			minutes = MaxMinutes
		}
		durations = durations.With(mode, minutes)
	}
	return durations
}

// ParseMinutes validates free-text duration input.
// Values above MaxMinutes are clamped and reported through clamped.
func ParseMinutes(raw string) (minutes int, clamped bool, err error) {
	trimmed, ok := stripDigitGroups(strings.TrimSpace(raw))
	if !ok {
		return 0, false, fmt.Errorf("%w: %q is not a number", ErrInvalidDuration, raw)
	}
	parsed, err := strconv.Atoi(trimmed)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(trimmed, "-") {
		return MaxMinutes, true, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q is not a number", ErrInvalidDuration, raw)
	}
	if parsed < MinMinutes {
		return 0, false, fmt.Errorf("%w: %d must be greater than zero", ErrInvalidDuration, parsed)
	}
	if parsed > MaxMinutes {
		return MaxMinutes, true, nil
	}
	return parsed, false, nil
}

// stripDigitGroups removes single underscores between digits, so "1_000"
// reads as 1000. Leading, trailing or doubled underscores are rejected.
func stripDigitGroups(value string) (string, bool) {
	if !strings.Contains(value, "_") {
		return value, true
	}
	digits := strings.TrimLeft(value, "+-")
	if len(value)-len(digits) > 1 {
		return "", false
	}
	for _, group := range strings.Split(digits, "_") {
		if group == "" {
			return "", false
		}
		for _, r := range group {
			if r < '0' || r > '9' {
				return "", false
			}
		}
	}
	return strings.ReplaceAll(value, "_", ""), true
}
