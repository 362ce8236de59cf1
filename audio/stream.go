package audio

import "github.com/gopxl/beep/v2"

// Streamer exposes the buffer to beep encoders.
func (b *Buffer) Streamer() beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(b.Frames) {
			return 0, false
		}
		n := copy(samples, b.Frames[pos:])
		pos += n
		return n, true
	})
}

// BeepFormat is the 16-bit stereo format used when writing a buffer out.
func (b *Buffer) BeepFormat() beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(b.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}
}

// Mono downmixes to signed 16-bit samples.
func (b *Buffer) Mono() []int16 {
	out := make([]int16, len(b.Frames))
	for i, f := range b.Frames {
		out[i] = clampS16((f[0] + f[1]) / 2)
	}
	return out
}
