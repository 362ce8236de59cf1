package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
	"github.com/mewkiz/flac"
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

type Format string

const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
)

// Sniff identifies the container from its leading bytes.
func Sniff(data []byte) (Format, bool) {
	switch {
	case bytes.HasPrefix(data, []byte("RIFF")) && len(data) >= 12 && string(data[8:12]) == "WAVE":
		return FormatWAV, true
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC, true
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3, true
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3, true
	}
	return "", false
}

// Decode turns raw WAV, MP3 or FLAC bytes into a Buffer.
func Decode(data []byte) (*Buffer, error) {
	format, ok := Sniff(data)
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	switch format {
	case FormatWAV:
		s, f, err := wav.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding wav: %w", err)
		}
		defer s.Close()
		return drain(s, f)
	case FormatMP3:
		s, f, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("decoding mp3: %w", err)
		}
		defer s.Close()
		return drain(s, f)
	default:
		return decodeFlac(data)
	}
}

func drain(s beep.StreamSeekCloser, f beep.Format) (*Buffer, error) {
	out := &Buffer{SampleRate: int(f.SampleRate)}
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		out.Frames = append(out.Frames, chunk[:n]...)
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeFlac(data []byte) (*Buffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding flac: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	if info.NChannels == 0 || info.NChannels > 2 {
		return nil, fmt.Errorf("decoding flac: %d channels: %w", info.NChannels, ErrUnsupportedFormat)
	}
	scale, err := sampleScale(info.BitsPerSample)
	if err != nil {
		return nil, err
	}

	out := &Buffer{SampleRate: int(info.SampleRate)}
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding flac frame: %w", err)
		}
		left := f.Subframes[0].Samples
		right := left
		if len(f.Subframes) > 1 {
			right = f.Subframes[1].Samples
		}
		for i := 0; i < int(f.BlockSize); i++ {
			out.Frames = append(out.Frames, [2]float64{
				float64(left[i]) / scale,
				float64(right[i]) / scale,
			})
		}
	}
	return out, nil
}

// sampleScale is the divisor that maps bps-bit integers into [-1, 1).
func sampleScale(bps uint8) (float64, error) {
	if bps == 0 || bps > 32 {
		return 0, fmt.Errorf("decoding flac: %d bits per sample: %w", bps, ErrUnsupportedFormat)
	}
	return float64(int64(1) << (bps - 1)), nil
}
