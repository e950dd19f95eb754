package main

import (
	"context"
	"fmt"
	"os"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/sound"
	"pomodoro/internal/storage"
	"pomodoro/internal/tui"
	"pomodoro/internal/ui/preferences"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const appName = "Pomodoro"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := storage.LoadSettings(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
	}

	// The terminal is the screen, so logs only go to a file.
	logger := zap.NewNop()
	if settings.Log.File != "" {
		logger, err = logging.New(settings.Log)
		if err != nil {
			return err
		}
	}
	defer func() {
		_ = logger.Sync()
	}()

	player := sound.NewPlayer(logger.Named("sound"), soundConfig(settings.Sound))
	if err := player.Start(context.Background()); err != nil {
		return err
	}
	defer func() {
		_ = player.Close()
	}()

	var program *tea.Program
	scheduler := platform.NewDispatchScheduler(tui.Dispatch(func() *tea.Program {
		return program
	}))
	engine := countdown.New(settings.Durations, scheduler, countdown.Config{
		Logger: logger.Named("countdown"),
	})
	engine.SetCuePlayer(player)
	defer engine.Close()

	program = tea.NewProgram(tui.New(engine, logger), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func soundConfig(settings preferences.SoundSettings) sound.Config {
	return sound.NewConfig(settings.ClickFile, settings.FinishFile, settings.Volume, settings.Muted)
}
