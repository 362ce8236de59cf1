package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2/wav"

	"dotdash/audio"
	"dotdash/encoder"
)

// Written describes one file produced by Write.
type Written struct {
	Path       string
	Frames     uint64
	Bytes      int64
	EncodeTime time.Duration
}

// Write stores buf at path, encoded by the path's extension (.wav or .flac).
func Write(path string, buf *audio.Buffer) (Written, error) {
	w := Written{Path: path}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return w, fmt.Errorf("creating asset directory: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		start := time.Now()
		f, err := os.Create(path)
		if err != nil {
			return w, err
		}
		if err := wav.Encode(f, buf.Streamer(), buf.BeepFormat()); err != nil {
			f.Close()
			return w, fmt.Errorf("writing wav %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return w, err
		}
		w.Frames = uint64(len(buf.Frames))
		w.EncodeTime = time.Since(start)
	case ".flac":
		enc, err := encoder.NewFlac(buf.SampleRate)
		if err != nil {
			return w, err
		}
		if err := enc.EncodeAll(buf.Mono()); err != nil {
			return w, fmt.Errorf("writing flac %s: %w", path, err)
		}
		if err := os.WriteFile(path, enc.Bytes(), 0644); err != nil {
			return w, err
		}
		w.Frames = enc.TotalFrames()
		w.EncodeTime = enc.EncodeTime()
	default:
		return w, fmt.Errorf("writing %s: %w", path, audio.ErrUnsupportedFormat)
	}

	info, err := os.Stat(path)
	if err != nil {
		return w, err
	}
	w.Bytes = info.Size()
	return w, nil
}
