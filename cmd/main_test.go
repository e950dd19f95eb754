package main

import (
	"path/filepath"
	"testing"

	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"

	"go.uber.org/fx"
)

// TestAppGraphValidity verifies that the dependency graph is resolvable.
func TestAppGraphValidity(t *testing.T) {
	if err := fx.ValidateApp(AppOptions); err != nil {
		t.Errorf("Dependency graph is not valid: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(preferences.DefaultSettings())
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
	logger.Info("Test logger initialization")
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	settings := preferences.DefaultSettings()
	settings.Log.Level = "loud"
	if _, err := newLogger(settings); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
}

func TestLoadSettingsFallsBackToDefaults(t *testing.T) {
	t.Setenv(storage.EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(storage.EnvLogLevel, "")

	if got := loadSettings(); got != preferences.DefaultSettings() {
		t.Fatalf("settings: got %+v, want defaults", got)
	}
}
