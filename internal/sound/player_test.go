package sound

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pomodoro/internal/core/model"
)

type fakeOutput struct {
	initErr error
	inits   chan beep.SampleRate
	played  chan beep.Streamer
}

func newFakeOutput(initErr error) *fakeOutput {
	return &fakeOutput{
		initErr: initErr,
		inits:   make(chan beep.SampleRate, 4),
		played:  make(chan beep.Streamer, 16),
	}
}

func (output *fakeOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	output.inits <- sampleRate
	return output.initErr
}

func (output *fakeOutput) Play(streamer beep.Streamer) {
	output.played <- streamer
}

func startPlayer(t *testing.T, logger *zap.Logger, config Config, output Output) *Player {
	t.Helper()
	player := NewPlayerWithOutput(logger, config, output)
	if err := player.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		_ = player.Close()
	})
	return player
}

func waitPlayed(t *testing.T, output *fakeOutput) beep.Streamer {
	t.Helper()
	select {
	case streamer := <-output.played:
		return streamer
	case <-time.After(2 * time.Second):
		t.Fatal("timeout: cue was not played")
		return nil
	}
}

func streamLength(streamer beep.Streamer) int {
	samples := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(samples)
		total += n
		if !ok {
			return total
		}
	}
}

func TestPlayRendersBuiltinCues(t *testing.T) {
	output := newFakeOutput(nil)
	player := startPlayer(t, zap.NewNop(), Config{Volume: 1}, output)

	player.Play(model.CueClick)
	click := waitPlayed(t, output)
	player.Play(model.CueFinish)
	finish := waitPlayed(t, output)

	clickSamples := streamLength(click)
	finishSamples := streamLength(finish)
	if clickSamples == 0 || finishSamples == 0 {
		t.Fatalf("empty cue: click=%d finish=%d", clickSamples, finishSamples)
	}
	if finishSamples <= clickSamples {
		t.Fatalf("finish cue should be longer than click: click=%d finish=%d", clickSamples, finishSamples)
	}
	if rate := <-output.inits; rate != defaultSampleRate {
		t.Fatalf("init sample rate: got %d, want %d", rate, defaultSampleRate)
	}
}

func TestPlayNeverBlocks(t *testing.T) {
	player := NewPlayerWithOutput(zap.NewNop(), Config{QueueSize: 1}, newFakeOutput(nil))

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			player.Play(model.CueClick)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Play blocked without a running worker")
	}
}

func TestMutedPlayerSkipsPlayback(t *testing.T) {
	output := newFakeOutput(nil)
	player := startPlayer(t, zap.NewNop(), Config{Muted: true}, output)

	player.Play(model.CueFinish)

	select {
	case <-output.played:
		t.Fatal("muted player rendered a cue")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMissingFileFallsBackToTone(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	output := newFakeOutput(nil)
	missing := filepath.Join(t.TempDir(), "finish.wav")
	player := startPlayer(t, zap.New(core), Config{
		Files:  map[model.Cue]string{model.CueFinish: missing},
		Volume: 0.5,
	}, output)

	player.Play(model.CueFinish)
	if streamLength(waitPlayed(t, output)) == 0 {
		t.Fatal("fallback tone is empty")
	}

	entries := logs.FilterMessage("sound file unusable, using built-in tone").All()
	if len(entries) != 1 {
		t.Fatalf("warnings: got %d, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["path"]; got != missing {
		t.Fatalf("logged path: got %v, want %s", got, missing)
	}
}

func TestUnsupportedFormatIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "click.ogg")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := decodeFile(path, defaultSampleRate)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("decodeFile error: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestOutputInitFailureDisablesSound(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	output := newFakeOutput(errors.New("no audio device"))
	player := startPlayer(t, zap.New(core), Config{Volume: 1}, output)

	player.Play(model.CueClick)
	player.Play(model.CueFinish)

	select {
	case <-output.inits:
	case <-time.After(2 * time.Second):
		t.Fatal("output was never initialized")
	}
	select {
	case <-output.played:
		t.Fatal("cue played after init failure")
	case <-time.After(100 * time.Millisecond):
	}

	if err := player.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := logs.FilterMessage("audio output unavailable, sound disabled").Len(); n != 1 {
		t.Fatalf("init failure warnings: got %d, want 1", n)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	player := NewPlayerWithOutput(zap.NewNop(), Config{}, newFakeOutput(nil))
	if err := player.Close(); err != nil {
		t.Fatalf("Close before Start: %v", err)
	}
	if err := player.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := player.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := player.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestNewConfigMapsCueFiles(t *testing.T) {
	config := NewConfig("click.wav", "", 0.5, true)

	if got := config.Files[model.CueClick]; got != "click.wav" {
		t.Fatalf("click file: got %q, want %q", got, "click.wav")
	}
	if _, ok := config.Files[model.CueFinish]; ok {
		t.Fatal("empty finish path should keep the built-in tone")
	}
	if config.Volume != 0.5 || !config.Muted {
		t.Fatalf("config: got %+v", config)
	}
}
