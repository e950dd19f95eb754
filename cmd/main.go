package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/model"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/sound"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timerview"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.timer"

	eventBuffer = 32
)

// AppOptions is the desktop application graph.
var AppOptions = fx.Options(
	fx.Provide(
		loadSettings,
		newLogger,
		newFyneApp,
		newScheduler,
		newSoundPlayer,
		newEngine,
		newSettingsWindow,
		newTimerWindow,
		newTray,
		acquireInstance,
	),
	fx.Invoke(registerHooks),
)

func main() {
	if err := platform.ActivateRunning(appName); err == nil {
		log.Printf("%s is already running", appName)
		return
	}

	var fyneApp fyne.App
	application := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		AppOptions,
		fx.Populate(&fyneApp),
	)
	if err := application.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error building application: %v\n", err)
		os.Exit(1)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancelStart()
	if err := application.Start(startCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting application: %v\n", err)
		os.Exit(1)
	}

	fyneApp.Run()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), fx.DefaultTimeout)
	defer cancelStop()
	if err := application.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error stopping application: %v\n", err)
	}
}

// loadSettings reads startup options; a broken file falls back to defaults.
func loadSettings() preferences.Settings {
	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("settings: %v", err)
	}
	return settings
}

func newLogger(settings preferences.Settings) (*zap.Logger, error) {
	return logging.New(settings.Log)
}

func newFyneApp() fyne.App {
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconIdle))
	return fyneApp
}

func newScheduler() countdown.Scheduler {
	return platform.NewDispatchScheduler(fyne.Do)
}

func newSoundPlayer(lc fx.Lifecycle, logger *zap.Logger, settings preferences.Settings) *sound.Player {
	player := sound.NewPlayer(logger.Named("sound"), soundConfig(settings.Sound))
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			// The worker outlives the start context.
			return player.Start(context.Background())
		},
		OnStop: func(context.Context) error {
			return player.Close()
		},
	})
	return player
}

func newEngine(lc fx.Lifecycle, settings preferences.Settings, scheduler countdown.Scheduler, player *sound.Player, logger *zap.Logger) *countdown.Engine {
	engine := countdown.New(settings.Durations, scheduler, countdown.Config{
		Logger: logger.Named("countdown"),
	})
	engine.SetCuePlayer(player)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			engine.Close()
			return nil
		},
	})
	return engine
}

func newSettingsWindow(fyneApp fyne.App, engine *countdown.Engine, logger *zap.Logger) *preferences.Window {
	return preferences.New(fyneApp, engine.Durations(), func(mode model.Mode, raw string) (countdown.DurationUpdate, error) {
		update, err := engine.SetConfiguredDuration(mode, raw)
		if err != nil {
			logger.Info("duration rejected",
				zap.String("mode", string(mode)),
				zap.String("input", raw),
				zap.Error(err))
		}
		return update, err
	})
}

func newTimerWindow(fyneApp fyne.App, settings preferences.Settings, engine *countdown.Engine, prefsWindow *preferences.Window, logger *zap.Logger) *timerview.Window {
	return timerview.New(fyneApp, timerview.Config{
		Title:  appName,
		Width:  settings.WindowWidth,
		Height: settings.WindowHeight,
		Icon:   resources.MustIcon(resources.IconIdle),
	}, timerview.Actions{
		OnToggle: engine.ToggleStart,
		OnSelectMode: func(mode model.Mode) {
			if err := engine.SelectMode(mode); err != nil {
				logger.Warn("select mode failed", zap.String("mode", string(mode)), zap.Error(err))
			}
		},
		OnSettings: prefsWindow.Show,
	})
}

func newTray(fyneApp fyne.App, engine *countdown.Engine, timerWindow *timerview.Window, prefsWindow *preferences.Window, logger *zap.Logger) *tray.Manager {
	var host tray.Host
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		host = desktopApp
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	return tray.New(host, tray.Icons{
		Idle:    resources.MustIcon(resources.IconIdle),
		Running: resources.MustIcon(resources.IconRunning),
	}, tray.Callbacks{
		OnShow:   timerWindow.Show,
		OnToggle: engine.ToggleStart,
		OnSelectMode: func(mode model.Mode) {
			if err := engine.SelectMode(mode); err != nil {
				logger.Warn("select mode failed", zap.String("mode", string(mode)), zap.Error(err))
			}
		},
		OnSettings: prefsWindow.Show,
		OnQuit:     fyneApp.Quit,
	})
}

func acquireInstance(lc fx.Lifecycle) (*platform.InstanceGuard, error) {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return nil, fmt.Errorf("single instance: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return guard.Release()
		},
	})
	return guard, nil
}

// registerHooks connects engine events to the windows and tray.
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	engine *countdown.Engine,
	timerWindow *timerview.Window,
	prefsWindow *preferences.Window,
	trayManager *tray.Manager,
	guard *platform.InstanceGuard,
) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			events := engine.Subscribe(eventBuffer)
			go pumpEvents(events, timerWindow, prefsWindow, trayManager)

			snapshot := engine.Snapshot()
			// Start runs before the event loop, on the main goroutine.
			timerWindow.RenderUnsafe(timerview.StateFromSnapshot(snapshot))
			trayManager.SetStatus(snapshot.Mode, snapshot.Display)
			timerWindow.Show()

			guard.Serve(func() {
				fyne.Do(timerWindow.Show)
			})
			logger.Info("pomodoro started", zap.String("run_id", snapshot.RunID))
			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info("shutting down")
			_ = logger.Sync()
			return nil
		},
	})
}

func pumpEvents(events <-chan countdown.Event, timerWindow *timerview.Window, prefsWindow *preferences.Window, trayManager *tray.Manager) {
	for event := range events {
		event := event
		timerWindow.Render(timerview.StateFromEvent(event))
		fyne.Do(func() {
			trayManager.SetStatus(event.Mode, event.Display)
			trayManager.SetRunning(event.Running)
			if event.Type == countdown.EventDurationChange {
				prefsWindow.UpdateDuration(event.DurationMode, event.Minutes)
			}
		})
	}
}

func soundConfig(settings preferences.SoundSettings) sound.Config {
	return sound.NewConfig(settings.ClickFile, settings.FinishFile, settings.Volume, settings.Muted)
}
