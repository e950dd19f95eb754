package storage

import (
	"os"
	"path/filepath"
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/preferences"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestLoadSettingsFromMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "absent.yaml")

	settings, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Fatalf("settings: got %+v, want defaults", settings)
	}
}

func TestLoadSettingsFromAppliesYaml(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	path := writeSettings(t, `
window:
  width: 480
  height: 720
sound:
  click_file: sounds/click.wav
  finish_file: /opt/pomodoro/finish.mp3
  volume: 0.4
  muted: true
log:
  level: debug
  development: true
  file: pomodoro.log
`)

	settings, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	baseDir := filepath.Dir(path)

	if settings.WindowWidth != 480 || settings.WindowHeight != 720 {
		t.Errorf("window: got %vx%v, want 480x720", settings.WindowWidth, settings.WindowHeight)
	}
	if want := filepath.Join(baseDir, "sounds", "click.wav"); settings.Sound.ClickFile != want {
		t.Errorf("click file: got %q, want %q", settings.Sound.ClickFile, want)
	}
	if settings.Sound.FinishFile != "/opt/pomodoro/finish.mp3" {
		t.Errorf("finish file: got %q", settings.Sound.FinishFile)
	}
	if settings.Sound.Volume != 0.4 || !settings.Sound.Muted {
		t.Errorf("sound: got %+v", settings.Sound)
	}
	if settings.Log.Level != "debug" || !settings.Log.Development {
		t.Errorf("log: got %+v", settings.Log)
	}
	if want := filepath.Join(baseDir, "pomodoro.log"); settings.Log.File != want {
		t.Errorf("log file: got %q, want %q", settings.Log.File, want)
	}
}

func TestLoadSettingsFromKeepsDefaultDurations(t *testing.T) {
	path := writeSettings(t, "window:\n  width: 300\n")

	settings, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	if settings.Durations != model.DefaultDurations() {
		t.Fatalf("durations: got %+v, want defaults", settings.Durations)
	}
}

func TestLoadSettingsFromIgnoresOutOfRangeVolume(t *testing.T) {
	path := writeSettings(t, "sound:\n  volume: 3\n")

	settings, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	if settings.Sound.Volume != 1 {
		t.Fatalf("volume: got %v, want default 1", settings.Sound.Volume)
	}
}

func TestLoadSettingsFromInvalidYaml(t *testing.T) {
	path := writeSettings(t, "window: [unterminated\n")

	settings, err := LoadSettingsFrom(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if settings.WindowWidth != preferences.DefaultSettings().WindowWidth {
		t.Fatalf("defaults should be returned alongside the error, got %+v", settings)
	}
}

func TestLogLevelEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	path := writeSettings(t, "log:\n  level: debug\n")

	settings, err := LoadSettingsFrom(path)
	if err != nil {
		t.Fatalf("LoadSettingsFrom: %v", err)
	}
	if settings.Log.Level != "warn" {
		t.Fatalf("log level: got %q, want %q", settings.Log.Level, "warn")
	}
}

func TestResolveConfigPathHonorsOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvConfigPath, want)

	got, err := ResolveConfigPath("Pomodoro")
	if err != nil {
		t.Fatalf("ResolveConfigPath: %v", err)
	}
	if got != want {
		t.Fatalf("path: got %q, want %q", got, want)
	}
}
