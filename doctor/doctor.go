package doctor

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"dotdash/assets"
	"dotdash/audio"
	"dotdash/log"
	"dotdash/sound"
)

const DefaultFetchTimeout = 10 * time.Second

type Config struct {
	NewContext func() (audio.Context, error)
	Fetcher    assets.Fetcher
	Assets     []sound.Asset
	// FetchTimeout bounds each asset fetch. Defaults to DefaultFetchTimeout.
	FetchTimeout time.Duration
	// Interactive installs a Ctrl+C handler for terminal runs.
	Interactive bool
}

// Run executes the diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(w io.Writer, cfg Config) int {
	if cfg.Interactive {
		setupInterruptHandler()
	}
	if cfg.NewContext == nil {
		cfg.NewContext = audio.NewContext
	}
	if cfg.Assets == nil {
		cfg.Assets = sound.DefaultAssets
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}

	fmt.Fprintln(w, "dotdash doctor - audio diagnostics")
	fmt.Fprintln(w, "==================================")

	ac, ok := checkContext(w, cfg)
	if ok {
		defer ac.Close()
		ok = checkAssets(w, cfg, ac)
	}
	if ok {
		ok = checkPlayback(w, cfg, ac)
	}

	fmt.Fprintln(w)
	if ok {
		fmt.Fprintln(w, "All checks passed!")
		return 0
	}
	fmt.Fprintln(w, "Some checks failed. See details above.")
	return 1
}

func checkContext(w io.Writer, cfg Config) (audio.Context, bool) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[1/3] Audio output")

	ac, err := cfg.NewContext()
	if err != nil {
		fmt.Fprintf(w, "  FAIL: cannot open audio output: %v\n", err)
		log.Errorf("doctor: audio output: %v", err)
		return nil, false
	}
	fmt.Fprintln(w, "  PASS: audio context ready")
	return ac, true
}

func checkAssets(w io.Writer, cfg Config, ac audio.Context) bool {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[2/3] Sound assets")

	if cfg.Fetcher == nil {
		fmt.Fprintln(w, "  FAIL: no asset source configured")
		return false
	}

	ok := true
	for _, a := range cfg.Assets {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		data, err := cfg.Fetcher.Fetch(ctx, a.Location)
		cancel()
		if err != nil {
			fmt.Fprintf(w, "  FAIL: %-12s %v\n", a.Name, err)
			log.Errorf("doctor: fetch %s: %v", a.Location, err)
			ok = false
			continue
		}
		buf, err := ac.Decode(data)
		if err != nil {
			fmt.Fprintf(w, "  FAIL: %-12s %s: %v\n", a.Name, a.Location, err)
			log.Errorf("doctor: decode %s: %v", a.Location, err)
			ok = false
			continue
		}
		fmt.Fprintf(w, "  PASS: %-12s %.1f KB, %v\n", a.Name, float64(len(data))/1024, buf.Duration().Round(time.Millisecond))
	}
	return ok
}

// playRecorder captures what the manager hands to the real context.
type playRecorder struct {
	audio.Context
	mu    sync.Mutex
	calls int
	last  *audio.Buffer
	err   error
}

func (p *playRecorder) Play(buf *audio.Buffer, gain float64) error {
	err := p.Context.Play(buf, gain)
	p.mu.Lock()
	p.calls++
	p.last = buf
	p.err = err
	p.mu.Unlock()
	return err
}

func (p *playRecorder) Close() {}

func checkPlayback(w io.Writer, cfg Config, ac audio.Context) bool {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[3/3] Playback")

	rec := &playRecorder{Context: ac}
	m := sound.New(sound.Config{
		NewContext: func() (audio.Context, error) { return rec, nil },
		Fetcher:    cfg.Fetcher,
		Assets:     cfg.Assets,
	})
	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout*time.Duration(len(cfg.Assets)))
	m.Initialize(ctx)
	cancel()
	m.PlaySound(sound.Click, sound.Options{})

	rec.mu.Lock()
	calls, last, err := rec.calls, rec.last, rec.err
	rec.mu.Unlock()

	switch {
	case calls == 0:
		fmt.Fprintln(w, "  FAIL: click was not played")
		return false
	case err != nil:
		fmt.Fprintf(w, "  FAIL: playback error: %v\n", err)
		log.Errorf("doctor: playback: %v", err)
		return false
	}
	time.Sleep(last.Duration())
	fmt.Fprintln(w, "  PASS: click played")
	return true
}
