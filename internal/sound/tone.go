package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"

	"pomodoro/internal/core/model"
)

const defaultSampleRate = beep.SampleRate(44100)

type note struct {
	frequency float64
	length    time.Duration
}

var builtinCues = map[model.Cue][]note{
	model.CueClick: {
		{frequency: 1320, length: 35 * time.Millisecond},
	},
	model.CueFinish: {
		{frequency: 880, length: 220 * time.Millisecond},
		{frequency: 0, length: 60 * time.Millisecond},
		{frequency: 1108.73, length: 220 * time.Millisecond},
		{frequency: 0, length: 60 * time.Millisecond},
		{frequency: 1318.51, length: 420 * time.Millisecond},
	},
}

// synthesize renders the built-in notes of cue into a buffer.
func synthesize(cue model.Cue, sampleRate beep.SampleRate) *beep.Buffer {
	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	for _, n := range builtinCues[cue] {
		if n.frequency == 0 {
			buffer.Append(beep.Silence(sampleRate.N(n.length)))
			continue
		}
		buffer.Append(sine(sampleRate, n.frequency, n.length))
	}
	return buffer
}

// sine produces a tone with a short linear fade at both ends to avoid clicks.
func sine(sampleRate beep.SampleRate, frequency float64, length time.Duration) beep.Streamer {
	total := sampleRate.N(length)
	fade := sampleRate.N(5 * time.Millisecond)
	if fade*2 > total {
		fade = total / 2
	}
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		filled := 0
		for i := range samples {
			if position >= total {
				break
			}
			gain := 0.5
			if fade > 0 && position < fade {
				gain *= float64(position) / float64(fade)
			}
			if fade > 0 && total-position < fade {
				gain *= float64(total-position) / float64(fade)
			}
			value := gain * math.Sin(2*math.Pi*frequency*float64(position)/float64(sampleRate))
			samples[i][0] = value
			samples[i][1] = value
			position++
			filled++
		}
		return filled, true
	})
}
