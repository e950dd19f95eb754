package timerview

import (
	"testing"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/palette"

	"fyne.io/fyne/v2/test"
)

func newTestWindow(t *testing.T) (*Window, *[]string) {
	t.Helper()
	app := test.NewTempApp(t)
	var calls []string
	view := New(app, Config{Width: 300, Height: 500}, Actions{
		OnToggle:     func() { calls = append(calls, "toggle") },
		OnSelectMode: func(mode model.Mode) { calls = append(calls, "select:"+string(mode)) },
		OnSettings:   func() { calls = append(calls, "settings") },
	})
	return view, &calls
}

func TestRenderUpdatesLabelAndButton(t *testing.T) {
	view, _ := newTestWindow(t)

	view.RenderUnsafe(State{Mode: model.ModePomodoro, Running: true, Display: "24:59"})
	if view.timeLabel.Text != "24:59" {
		t.Fatalf("time label: got %q, want %q", view.timeLabel.Text, "24:59")
	}
	if view.startButton.Text != "Stop" {
		t.Fatalf("button: got %q, want Stop", view.startButton.Text)
	}

	view.RenderUnsafe(State{Mode: model.ModePomodoro, Running: false, Display: "24:59"})
	if view.startButton.Text != "Start" {
		t.Fatalf("button: got %q, want Start", view.startButton.Text)
	}
}

func TestRenderAppliesModeTheme(t *testing.T) {
	view, _ := newTestWindow(t)

	view.RenderUnsafe(State{Mode: model.ModeShortBreak, Display: "05:00"})

	theme := palette.For(model.ModeShortBreak)
	if view.rootBackground.FillColor != palette.MustRGBA(theme.Root) {
		t.Fatalf("root color: got %v, want %s", view.rootBackground.FillColor, theme.Root)
	}
	if view.frameBackground.FillColor != palette.MustRGBA(theme.Frame) {
		t.Fatalf("frame color: got %v, want %s", view.frameBackground.FillColor, theme.Frame)
	}
}

func TestButtonsForwardActions(t *testing.T) {
	view, calls := newTestWindow(t)

	test.Tap(view.startButton)
	test.Tap(view.modeButtons[model.ModeLongBreak])
	test.Tap(view.settingsButton)

	want := []string{"toggle", "select:long_break", "settings"}
	if len(*calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", *calls, want)
	}
	for i := range want {
		if (*calls)[i] != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, (*calls)[i], want[i])
		}
	}
}

func TestModeButtonLabels(t *testing.T) {
	view, _ := newTestWindow(t)

	for _, mode := range model.Modes() {
		button, ok := view.modeButtons[mode]
		if !ok {
			t.Fatalf("missing button for %s", mode)
		}
		if button.Text != mode.Label() {
			t.Errorf("button %s: got %q, want %q", mode, button.Text, mode.Label())
		}
	}
}
