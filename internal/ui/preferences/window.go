package preferences

import (
	"errors"
	"fmt"
	"strconv"

	"pomodoro/internal/core/countdown"
	"pomodoro/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	invalidInputTitle   = "Invalid Input"
	invalidInputMessage = "Please enter a valid number greater than zero."
	clampedTitle        = "Maximum Time Exceeded"
)

type noticeKind int

const (
	noticeError noticeKind = iota
	noticeWarning
)

// SetDurationFunc applies a raw minutes entry for one mode.
type SetDurationFunc func(mode model.Mode, raw string) (countdown.DurationUpdate, error)

// Window is the settings window with one duration row per mode.
type Window struct {
	window  fyne.Window
	entries map[model.Mode]*widget.Entry
	buttons map[model.Mode]*widget.Button
	onSet   SetDurationFunc
	notify  func(kind noticeKind, title, message string)
}

// New creates a settings window showing the given durations.
func New(app fyne.App, durations model.Durations, onSet SetDurationFunc) *Window {
	window := app.NewWindow("Settings")

	prefs := &Window{
		window:  window,
		entries: make(map[model.Mode]*widget.Entry),
		buttons: make(map[model.Mode]*widget.Button),
		onSet:   onSet,
	}
	prefs.notify = prefs.showNotice

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations (minutes)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, mode := range model.Modes() {
		mode := mode
		entry := widget.NewEntry()
		entry.SetText(strconv.Itoa(durations.Minutes(mode)))
		entry.OnSubmitted = func(string) {
			prefs.handleSet(mode)
		}
		button := widget.NewButton("Set", func() {
			prefs.handleSet(mode)
		})
		prefs.entries[mode] = entry
		prefs.buttons[mode] = button

		form.Add(widget.NewLabel(mode.Label()))
		form.Add(container.NewBorder(nil, nil, nil, button, entry))
	}

	window.SetContent(container.NewPadded(form))
	window.Resize(fyne.NewSize(320, 300))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the settings window, raising it when already open.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateDuration reflects a stored duration in the matching entry.
// Must be called on the fyne goroutine.
func (prefs *Window) UpdateDuration(mode model.Mode, minutes int) {
	entry, ok := prefs.entries[mode]
	if !ok {
		return
	}
	entry.SetText(strconv.Itoa(minutes))
}

func (prefs *Window) handleSet(mode model.Mode) {
	entry, ok := prefs.entries[mode]
	if !ok || prefs.onSet == nil {
		return
	}

	update, err := prefs.onSet(mode, entry.Text)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDuration) {
			prefs.notify(noticeError, invalidInputTitle, invalidInputMessage)
			return
		}
		prefs.notify(noticeError, invalidInputTitle, err.Error())
		return
	}

	entry.SetText(strconv.Itoa(update.Minutes))
	if update.Clamped {
		prefs.notify(noticeWarning, clampedTitle, fmt.Sprintf(
			"Maximum allowed time is %d minutes. Time has been set to %d minutes.",
			model.MaxMinutes, model.MaxMinutes,
		))
	}
}

func (prefs *Window) showNotice(kind noticeKind, title, message string) {
	icon := theme.ErrorIcon()
	if kind == noticeWarning {
		icon = theme.WarningIcon()
	}
	content := container.NewHBox(widget.NewIcon(icon), widget.NewLabel(message))
	dialog.NewCustom(title, "OK", content, prefs.window).Show()
}
