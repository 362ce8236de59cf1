package audio

import (
	"math"
	"time"
)

// Tone renders a sine at freq with an exponential decay envelope.
func Tone(sampleRate int, freq float64, d time.Duration, volume, decay float64) *Buffer {
	n := int(float64(sampleRate) * d.Seconds())
	buf := &Buffer{SampleRate: sampleRate, Frames: make([][2]float64, n)}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := math.Exp(-t * decay)
		s := math.Sin(2*math.Pi*freq*t) * volume * envelope
		buf.Frames[i] = [2]float64{s, s}
	}
	return buf
}

// DoubleTone plays the same tone twice with a gap of silence in between.
func DoubleTone(sampleRate int, freq float64, beepDur, gapDur time.Duration, volume, decay float64) *Buffer {
	beep := Tone(sampleRate, freq, beepDur, volume, decay)
	gap := make([][2]float64, int(float64(sampleRate)*gapDur.Seconds()))
	frames := make([][2]float64, 0, len(beep.Frames)*2+len(gap))
	frames = append(frames, beep.Frames...)
	frames = append(frames, gap...)
	frames = append(frames, beep.Frames...)
	return &Buffer{SampleRate: sampleRate, Frames: frames}
}
