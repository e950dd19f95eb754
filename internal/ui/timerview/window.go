package timerview

import (
	"image/color"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Config defines the main window geometry.
type Config struct {
	Title  string
	Width  float32
	Height float32
	Icon   fyne.Resource
}

// Actions are the user intents forwarded to the engine.
type Actions struct {
	OnToggle     func()
	OnSelectMode func(model.Mode)
	OnSettings   func()
}

// State is what the window renders.
type State struct {
	Mode    model.Mode
	Running bool
	Display string
}

// StateFromSnapshot converts an engine snapshot.
func StateFromSnapshot(snapshot countdown.Snapshot) State {
	return State{Mode: snapshot.Mode, Running: snapshot.Running, Display: snapshot.Display}
}

// StateFromEvent converts an engine event.
func StateFromEvent(event countdown.Event) State {
	return State{Mode: event.Mode, Running: event.Running, Display: event.Display}
}

// Window is the main timer window.
type Window struct {
	window          fyne.Window
	rootBackground  *canvas.Rectangle
	frameBackground *canvas.Rectangle
	timeLabel       *canvas.Text
	startButton     *widget.Button
	settingsButton  *widget.Button
	modeButtons     map[model.Mode]*widget.Button
	actions         Actions
	state           State
}

const timeTextSize = 100

// New creates the main timer window.
func New(app fyne.App, config Config, actions Actions) *Window {
	if config.Title == "" {
		config.Title = "Pomodoro"
	}
	window := app.NewWindow(config.Title)
	if config.Icon != nil {
		window.SetIcon(config.Icon)
	}

	theme := palette.For(model.ModePomodoro)
	rootBackground := canvas.NewRectangle(palette.MustRGBA(theme.Root))
	frameBackground := canvas.NewRectangle(palette.MustRGBA(theme.Frame))

	timeLabel := canvas.NewText("--:--", palette.MustRGBA(palette.Foreground))
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	timeLabel.TextSize = timeTextSize

	view := &Window{
		window:          window,
		rootBackground:  rootBackground,
		frameBackground: frameBackground,
		timeLabel:       timeLabel,
		modeButtons:     make(map[model.Mode]*widget.Button),
		actions:         actions,
	}

	view.settingsButton = widget.NewButton("Settings", func() {
		if view.actions.OnSettings != nil {
			view.actions.OnSettings()
		}
	})
	view.startButton = widget.NewButton("Start", func() {
		if view.actions.OnToggle != nil {
			view.actions.OnToggle()
		}
	})
	view.startButton.Importance = widget.HighImportance

	modeRow := container.NewHBox()
	for _, mode := range model.Modes() {
		mode := mode
		button := widget.NewButton(mode.Label(), func() {
			if view.actions.OnSelectMode != nil {
				view.actions.OnSelectMode(mode)
			}
		})
		view.modeButtons[mode] = button
		modeRow.Add(button)
	}

	frame := container.NewStack(
		frameBackground,
		container.NewPadded(container.NewVBox(
			container.NewCenter(modeRow),
			timeLabel,
			container.NewCenter(view.startButton),
		)),
	)
	content := container.NewVBox(
		container.NewCenter(view.settingsButton),
		layout.NewSpacer(),
		container.NewCenter(frame),
	)
	window.SetContent(container.NewStack(rootBackground, container.NewPadded(content)))

	if config.Width > 0 && config.Height > 0 {
		window.Resize(fyne.NewSize(config.Width, config.Height))
	}
	window.SetMaster()
	return view
}

// Show displays the window and brings it forward.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Render updates the window from any goroutine.
func (view *Window) Render(state State) {
	fyne.Do(func() {
		view.RenderUnsafe(state)
	})
}

// RenderUnsafe updates the window. Must be called on the fyne goroutine.
func (view *Window) RenderUnsafe(state State) {
	previous := view.state
	view.state = state

	view.timeLabel.Text = state.Display
	view.timeLabel.Refresh()

	if state.Running {
		view.startButton.SetText("Stop")
	} else {
		view.startButton.SetText("Start")
	}

	if previous.Mode != state.Mode {
		view.applyThemeUnsafe(state.Mode)
	}
}

func (view *Window) applyThemeUnsafe(mode model.Mode) {
	theme := palette.For(mode)
	setFill(view.rootBackground, palette.MustRGBA(theme.Root))
	setFill(view.frameBackground, palette.MustRGBA(theme.Frame))
	for buttonMode, button := range view.modeButtons {
		if buttonMode == mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	}
}

func setFill(rectangle *canvas.Rectangle, fill color.Color) {
	rectangle.FillColor = fill
	rectangle.Refresh()
}
