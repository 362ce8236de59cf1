package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2/wav"

	"dotdash/encoder"
)

func wavBytes(t *testing.T, buf *Buffer) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.Encode(f, buf.Streamer(), buf.BeepFormat()); err != nil {
		f.Close()
		t.Fatalf("wav.Encode: %v", err)
	}
	f.Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestSniff(t *testing.T) {
	tests := []struct {
		input  []byte
		want   Format
		wantOK bool
	}{
		{[]byte("RIFF\x00\x00\x00\x00WAVEfmt "), FormatWAV, true},
		{[]byte("fLaC\x00\x00"), FormatFLAC, true},
		{[]byte("ID3\x04\x00"), FormatMP3, true},
		{[]byte{0xFF, 0xFB, 0x90, 0x00}, FormatMP3, true},
		{[]byte("RIFF\x00\x00\x00\x00AVI "), "", false},
		{[]byte("<html>"), "", false},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, ok := Sniff(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Sniff(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDecodeWAV(t *testing.T) {
	tone := Tone(22050, 700, 100*time.Millisecond, 0.5, 20)
	got, err := Decode(wavBytes(t, tone))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", got.SampleRate)
	}
	if len(got.Frames) != len(tone.Frames) {
		t.Errorf("len(Frames) = %d, want %d", len(got.Frames), len(tone.Frames))
	}
	for i := 0; i < len(got.Frames) && i < len(tone.Frames); i += 97 {
		if math.Abs(got.Frames[i][0]-tone.Frames[i][0]) > 1e-3 {
			t.Fatalf("frame %d = %v, want ~%v", i, got.Frames[i][0], tone.Frames[i][0])
		}
	}
}

func TestDecodeFLAC(t *testing.T) {
	tone := Tone(16000, 900, 300*time.Millisecond, 0.5, 10)
	enc, err := encoder.NewFlac(16000)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.EncodeAll(tone.Mono()); err != nil {
		t.Fatal(err)
	}

	got, err := Decode(enc.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", got.SampleRate)
	}
	if len(got.Frames) != len(tone.Frames) {
		t.Errorf("len(Frames) = %d, want %d", len(got.Frames), len(tone.Frames))
	}
	if d := got.Duration(); d != 300*time.Millisecond {
		t.Errorf("Duration = %v, want 300ms", d)
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte("<html>not found</html>"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeTruncatedWAV(t *testing.T) {
	if _, err := Decode([]byte("RIFF\x10\x00\x00\x00WAVE")); err == nil {
		t.Error("expected error for truncated wav")
	}
}

func TestDoubleToneLength(t *testing.T) {
	single := Tone(8000, 350, 80*time.Millisecond, 0.6, 30)
	double := DoubleTone(8000, 350, 80*time.Millisecond, 50*time.Millisecond, 0.6, 30)
	want := len(single.Frames)*2 + 400
	if len(double.Frames) != want {
		t.Errorf("len(Frames) = %d, want %d", len(double.Frames), want)
	}
}

func TestInt16FramesGainClamps(t *testing.T) {
	buf := &Buffer{SampleRate: 8000, Frames: [][2]float64{{1, -1}, {0.25, 0}}}
	got := int16Frames(buf, 2)
	want := []int16{32767, -32768, 16383, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestFakeContextRecords(t *testing.T) {
	f := NewFakeContext()
	buf := &Buffer{SampleRate: 8000}
	f.Register([]byte("dot"), buf)

	got, err := f.Decode([]byte("dot"))
	if err != nil || got != buf {
		t.Fatalf("Decode = %v, %v", got, err)
	}
	if _, err := f.Decode([]byte("garbage")); !errors.Is(err, ErrFakeDecode) {
		t.Errorf("err = %v, want ErrFakeDecode", err)
	}
	f.Play(buf, 0.5)
	if p := f.Played(); len(p) != 1 || p[0].Gain != 0.5 {
		t.Errorf("Played = %+v", p)
	}
}

func TestSampleScale(t *testing.T) {
	tests := []struct {
		bps     uint8
		want    float64
		wantErr bool
	}{
		{16, 32768, false},
		{24, 8388608, false},
		{1, 1, false},
		{32, 2147483648, false},
		{0, 0, true},
		{33, 0, true},
	}
	for _, tt := range tests {
		got, err := sampleScale(tt.bps)
		if (err != nil) != tt.wantErr {
			t.Errorf("sampleScale(%d) error = %v, wantErr %v", tt.bps, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("sampleScale(%d) error = %v, want ErrUnsupportedFormat", tt.bps, err)
		}
		if got != tt.want {
			t.Errorf("sampleScale(%d) = %v, want %v", tt.bps, got, tt.want)
		}
	}
}
