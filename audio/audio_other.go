//go:build !linux

package audio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
)

type malgoContext struct {
	ctx *malgo.AllocatedContext
}

func NewContext() (Context, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, err
	}
	return &malgoContext{ctx: ctx}, nil
}

func (m *malgoContext) Decode(data []byte) (*Buffer, error) {
	return Decode(data)
}

// Play opens a dedicated device per sound so overlapping plays mix in the
// backend. The device is torn down once the callback runs out of samples.
func (m *malgoContext) Play(buf *Buffer, gain float64) error {
	if buf == nil || len(buf.Frames) == 0 {
		return nil
	}
	samples := int16Frames(buf, gain)

	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.Playback.Format = malgo.FormatS16
	config.Playback.Channels = 2
	config.SampleRate = uint32(buf.SampleRate)

	var (
		pos  int
		once sync.Once
		done = make(chan struct{})
	)
	callbacks := malgo.DeviceCallbacks{
		Data: func(pOutput, _ []byte, frameCount uint32) {
			want := int(frameCount) * 2
			n := 0
			for ; n < want && pos < len(samples); n++ {
				s := samples[pos]
				pOutput[n*2] = byte(s)
				pOutput[n*2+1] = byte(s >> 8)
				pos++
			}
			// Zero-fill remainder
			for i := n * 2; i < len(pOutput); i++ {
				pOutput[i] = 0
			}
			if pos >= len(samples) {
				once.Do(func() { close(done) })
			}
		},
	}

	device, err := malgo.InitDevice(m.ctx.Context, config, callbacks)
	if err != nil {
		return fmt.Errorf("malgo device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("malgo start: %w", err)
	}
	go func() {
		<-done
		device.Uninit()
	}()
	return nil
}

func (m *malgoContext) Close() {
	m.ctx.Uninit()
	m.ctx.Free()
}
