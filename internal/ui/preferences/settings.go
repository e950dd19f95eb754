package preferences

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
)

// SoundSettings controls the click and finish cues.
type SoundSettings struct {
	ClickFile  string
	FinishFile string
	Volume     float64
	Muted      bool
}

// LogSettings controls the zap logger.
type LogSettings = logging.Settings

// Settings defines startup options. Durations always start from the built-in
// defaults; edits made at runtime live only in the engine.
type Settings struct {
	Durations model.Durations

	WindowWidth  float32
	WindowHeight float32

	Sound SoundSettings
	Log   LogSettings
}

// DefaultSettings returns default settings for the Pomodoro timer.
func DefaultSettings() Settings {
	return Settings{
		Durations:    model.DefaultDurations(),
		WindowWidth:  600,
		WindowHeight: 1000,
		Sound: SoundSettings{
			Volume: 1,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}
