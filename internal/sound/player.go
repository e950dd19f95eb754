package sound

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"go.uber.org/zap"

	"pomodoro/internal/core/model"
)

// ErrUnsupportedFormat indicates a cue file that is neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const defaultQueueSize = 8

// Output is the audio sink the player renders into.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(streamer beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

// Config contains playback options.
type Config struct {
	// Files maps a cue to an audio file. Cues without a usable file fall
	// back to a built-in tone.
	Files map[model.Cue]string
	// Volume is a linear gain in [0, 1].
	Volume    float64
	Muted     bool
	QueueSize int
}

// NewConfig builds a Config from the configured cue files. Empty paths keep
// the built-in tone for that cue.
func NewConfig(clickFile, finishFile string, volume float64, muted bool) Config {
	files := make(map[model.Cue]string)
	if clickFile != "" {
		files[model.CueClick] = clickFile
	}
	if finishFile != "" {
		files[model.CueFinish] = finishFile
	}
	return Config{
		Files:  files,
		Volume: volume,
		Muted:  muted,
	}
}

// Player plays cues on a background worker. Play never blocks and playback
// failures are logged, never returned.
type Player struct {
	logger  *zap.Logger
	config  Config
	output  Output
	queue   chan model.Cue
	buffers map[model.Cue]*beep.Buffer

	loadOnce sync.Once
	ready    bool

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// NewPlayer creates a player backed by the system speaker.
func NewPlayer(logger *zap.Logger, config Config) *Player {
	return NewPlayerWithOutput(logger, config, speakerOutput{})
}

// NewPlayerWithOutput creates a player rendering into output.
func NewPlayerWithOutput(logger *zap.Logger, config Config, output Output) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaultQueueSize
	}
	if config.Volume < 0 {
		config.Volume = 0
	}
	if config.Volume > 1 {
		config.Volume = 1
	}
	return &Player{
		logger:  logger,
		config:  config,
		output:  output,
		queue:   make(chan model.Cue, config.QueueSize),
		buffers: make(map[model.Cue]*beep.Buffer),
	}
}

// Play requests cue playback and returns immediately.
func (player *Player) Play(cue model.Cue) {
	if player.config.Muted {
		return
	}
	select {
	case player.queue <- cue:
	default:
		player.logger.Debug("sound queue full, cue dropped", zap.String("cue", string(cue)))
	}
}

// Start launches the playback worker.
func (player *Player) Start(ctx context.Context) error {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.started {
		return nil
	}
	workerCtx, cancel := context.WithCancel(ctx)
	player.cancel = cancel
	player.done = make(chan struct{})
	player.started = true

	go player.run(workerCtx, player.done)
	return nil
}

// Close stops the playback worker and waits for it to exit.
func (player *Player) Close() error {
	player.mu.Lock()
	if !player.started {
		player.mu.Unlock()
		return nil
	}
	player.started = false
	cancel := player.cancel
	done := player.done
	player.mu.Unlock()

	cancel()
	<-done
	return nil
}

func (player *Player) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case cue := <-player.queue:
			player.render(cue)
		}
	}
}

func (player *Player) render(cue model.Cue) {
	player.loadOnce.Do(player.load)
	if !player.ready {
		return
	}
	buffer, ok := player.buffers[cue]
	if !ok {
		player.logger.Warn("unknown sound cue", zap.String("cue", string(cue)))
		return
	}

	volume := &effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
	}
	if player.config.Volume <= 0 {
		volume.Silent = true
	} else {
		volume.Volume = math.Log2(player.config.Volume)
	}
	player.output.Play(volume)
}

func (player *Player) load() {
	for _, cue := range []model.Cue{model.CueClick, model.CueFinish} {
		path := player.config.Files[cue]
		if path == "" {
			player.buffers[cue] = synthesize(cue, defaultSampleRate)
			continue
		}
		buffer, err := decodeFile(path, defaultSampleRate)
		if err != nil {
			player.logger.Warn("sound file unusable, using built-in tone",
				zap.String("cue", string(cue)),
				zap.String("path", path),
				zap.Error(err))
			buffer = synthesize(cue, defaultSampleRate)
		}
		player.buffers[cue] = buffer
	}

	if err := player.output.Init(defaultSampleRate, defaultSampleRate.N(time.Second/10)); err != nil {
		player.logger.Warn("audio output unavailable, sound disabled", zap.Error(err))
		return
	}
	player.ready = true
}

func decodeFile(path string, target beep.SampleRate) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound file: %w", err)
	}
	defer file.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(file)
	case ".mp3":
		streamer, format, err = mp3.Decode(file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode sound file: %w", err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != target {
		source = beep.Resample(4, format.SampleRate, target, streamer)
	}
	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  target,
		NumChannels: format.NumChannels,
		Precision:   format.Precision,
	})
	buffer.Append(source)
	return buffer, nil
}
