package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const (
	settingsFileName = "settings.yaml"

	// EnvConfigPath overrides the settings file location.
	EnvConfigPath = "POMODORO_CONFIG"
	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "POMODORO_LOG_LEVEL"
)

type yamlSettings struct {
	Window struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"window"`
	Sound struct {
		ClickFile  string   `yaml:"click_file"`
		FinishFile string   `yaml:"finish_file"`
		Volume     *float64 `yaml:"volume"`
		Muted      bool     `yaml:"muted"`
	} `yaml:"sound"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
		File        string `yaml:"file"`
	} `yaml:"log"`
}

// LoadSettings reads startup options from YAML.
// If the config file does not exist, default settings are returned.
// The file is never written: runtime changes are not persisted.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		settings := preferences.DefaultSettings()
		applyEnv(&settings)
		return settings, err
	}
	return LoadSettingsFrom(configPath)
}

// LoadSettingsFrom reads startup options from the given file.
func LoadSettingsFrom(configPath string) (preferences.Settings, error) {
	settings, err := loadYaml(configPath)
	applyEnv(&settings)
	return settings, err
}

func loadYaml(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData, filepath.Dir(configPath))
	return settings, nil
}

// ResolveConfigPath returns the settings file path, honoring POMODORO_CONFIG.
func ResolveConfigPath(appName string) (string, error) {
	if override := os.Getenv(EnvConfigPath); override != "" {
		return os.ExpandEnv(override), nil
	}
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings, baseDir string) {
	if fileData.Window.Width > 0 {
		settings.WindowWidth = fileData.Window.Width
	}
	if fileData.Window.Height > 0 {
		settings.WindowHeight = fileData.Window.Height
	}

	settings.Sound.ClickFile = resolveRelative(baseDir, fileData.Sound.ClickFile)
	settings.Sound.FinishFile = resolveRelative(baseDir, fileData.Sound.FinishFile)
	if volume := fileData.Sound.Volume; volume != nil && *volume >= 0 && *volume <= 1 {
		settings.Sound.Volume = *volume
	}
	settings.Sound.Muted = fileData.Sound.Muted

	if fileData.Log.Level != "" {
		settings.Log.Level = fileData.Log.Level
	}
	settings.Log.Development = fileData.Log.Development
	settings.Log.File = resolveRelative(baseDir, fileData.Log.File)
}

func applyEnv(settings *preferences.Settings) {
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		settings.Log.Level = level
	}
}

func resolveRelative(baseDir, path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
