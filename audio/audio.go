package audio

import "time"

// Buffer is a decoded, playable sound. Frames are stereo samples in [-1, 1].
type Buffer struct {
	SampleRate int
	Frames     [][2]float64
}

func (b *Buffer) Duration() time.Duration {
	if b == nil || b.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(b.Frames)) * time.Second / time.Duration(b.SampleRate)
}

// Context is the platform playback pipeline. Play must not block until the
// sound finishes; every call gets its own one-shot source.
type Context interface {
	Decode(data []byte) (*Buffer, error)
	Play(buf *Buffer, gain float64) error
	Close()
}

// int16Frames applies gain and converts to interleaved stereo S16.
func int16Frames(buf *Buffer, gain float64) []int16 {
	out := make([]int16, len(buf.Frames)*2)
	for i, f := range buf.Frames {
		out[i*2] = clampS16(f[0] * gain)
		out[i*2+1] = clampS16(f[1] * gain)
	}
	return out
}

func clampS16(v float64) int16 {
	s := v * 32767
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}
