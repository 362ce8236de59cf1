// Package sound owns the sound bank and turns play requests and Morse
// notation into playback on an audio.Context.
package sound

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"dotdash/assets"
	"dotdash/audio"
	"dotdash/log"
	"dotdash/morse"
)

// MorseVolume is the gain every Morse trigger plays at.
const MorseVolume = 0.5

var (
	ErrUnknownSound = errors.New("unknown sound")
	ErrNoFetcher    = errors.New("no asset fetcher configured")
)

type Config struct {
	// NewContext builds the playback pipeline. Defaults to audio.NewContext.
	NewContext func() (audio.Context, error)
	Fetcher    assets.Fetcher
	// Scheduler defers Morse triggers. Defaults to TimerScheduler.
	Scheduler Scheduler
	// Assets defaults to DefaultAssets.
	Assets []Asset
}

type Options struct {
	// Volume is the playback gain. Zero means full volume.
	Volume float64
}

// LoadResult is the outcome of loading one asset.
type LoadResult struct {
	Name     string
	Location string
	Size     int
	Elapsed  time.Duration
	Err      error
}

type Status struct {
	ContextReady bool
	Enabled      bool
	Loaded       []string
}

// Manager plays the bank. Create one with New and call Initialize once;
// until then, and forever if the audio context fails, every play is silent.
type Manager struct {
	newContext func() (audio.Context, error)
	fetcher    assets.Fetcher
	scheduler  Scheduler
	assets     []Asset

	initOnce sync.Once
	enabled  atomic.Bool

	mu     sync.RWMutex
	ctx    audio.Context
	sounds map[string]*audio.Buffer
}

func New(cfg Config) *Manager {
	m := &Manager{
		newContext: cfg.NewContext,
		fetcher:    cfg.Fetcher,
		scheduler:  cfg.Scheduler,
		assets:     cfg.Assets,
		sounds:     make(map[string]*audio.Buffer),
	}
	if m.newContext == nil {
		m.newContext = audio.NewContext
	}
	if m.scheduler == nil {
		m.scheduler = TimerScheduler{}
	}
	if m.assets == nil {
		m.assets = DefaultAssets
	}
	m.enabled.Store(true)
	return m
}

// Initialize creates the audio context and loads the bank. Failures are
// logged, never returned. Calls after the first do nothing.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		ac, err := m.newContext()
		if err != nil {
			log.ContextFailed(err)
			return
		}
		m.mu.Lock()
		m.ctx = ac
		m.mu.Unlock()

		failed := 0
		for _, r := range m.loadSoundAssets(ctx) {
			if r.Err != nil {
				failed++
				log.AssetFailed(r.Name, r.Location, r.Err)
				continue
			}
			log.AssetLoaded(r.Name, r.Location, r.Size, r.Elapsed)
		}
		if failed > 0 {
			log.Warnf("%d of %d sounds failed to load", failed, len(m.assets))
		}
		log.Info(fmt.Sprintf("sound bank ready: %d of %d loaded", len(m.assets)-failed, len(m.assets)))
	})
}

// loadSoundAssets loads each asset in order. One failure never stops the rest.
func (m *Manager) loadSoundAssets(ctx context.Context) []LoadResult {
	results := make([]LoadResult, 0, len(m.assets))
	for _, a := range m.assets {
		results = append(results, m.loadAsset(ctx, a))
	}
	return results
}

func (m *Manager) loadAsset(ctx context.Context, a Asset) LoadResult {
	r := LoadResult{Name: a.Name, Location: a.Location}
	if !IsKnown(a.Name) {
		r.Err = fmt.Errorf("%q: %w", a.Name, ErrUnknownSound)
		return r
	}
	if m.fetcher == nil {
		r.Err = ErrNoFetcher
		return r
	}

	start := time.Now()
	data, err := m.fetcher.Fetch(ctx, a.Location)
	if err != nil {
		r.Err = fmt.Errorf("fetching: %w", err)
		return r
	}
	r.Size = len(data)

	m.mu.RLock()
	ac := m.ctx
	m.mu.RUnlock()
	if ac == nil {
		r.Err = errors.New("decoding: no audio context")
		return r
	}
	buf, err := ac.Decode(data)
	if err != nil {
		r.Err = fmt.Errorf("decoding: %w", err)
		return r
	}
	r.Elapsed = time.Since(start)

	m.mu.Lock()
	m.sounds[a.Name] = buf
	m.mu.Unlock()
	return r
}

// PlaySound starts name immediately. It is silent when the manager is
// disabled, has no audio context, or has no buffer for name.
func (m *Manager) PlaySound(name string, opts Options) {
	if !m.enabled.Load() {
		return
	}
	m.mu.RLock()
	ac, buf := m.ctx, m.sounds[name]
	m.mu.RUnlock()
	if ac == nil || buf == nil {
		return
	}

	gain := opts.Volume
	if gain == 0 || math.IsNaN(gain) {
		gain = 1
	}
	if err := ac.Play(buf, gain); err != nil {
		log.Warnf("play %s: %v", name, err)
	}
}

// PlayMorseSequence schedules text's dots and dashes and returns without
// waiting. Each trigger checks the enabled flag when it fires, not now.
// Returns nil when disabled or text is empty.
func (m *Manager) PlayMorseSequence(text string) *Sequence {
	if !m.enabled.Load() || text == "" {
		return nil
	}

	triggers, total := morse.Timeline(text)
	seq := &Sequence{Triggers: triggers, Total: total}
	for _, t := range triggers {
		sound := t.Sound
		seq.timers = append(seq.timers, m.scheduler.AfterFunc(t.Offset, func() {
			m.PlaySound(sound, Options{Volume: MorseVolume})
		}))
	}
	log.SequenceScheduled(len(triggers), total)
	return seq
}

// Toggle flips the enabled flag and returns the new value. Sounds already
// playing and triggers already scheduled are left alone.
func (m *Manager) Toggle() bool {
	for {
		old := m.enabled.Load()
		if m.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (m *Manager) Enabled() bool {
	return m.enabled.Load()
}

func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Status{ContextReady: m.ctx != nil, Enabled: m.enabled.Load()}
	for name := range m.sounds {
		s.Loaded = append(s.Loaded, name)
	}
	sort.Strings(s.Loaded)
	return s
}

// Close releases the audio context. Playback is silent afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	ac := m.ctx
	m.ctx = nil
	m.mu.Unlock()
	if ac != nil {
		ac.Close()
	}
}

// Sequence is one scheduled Morse rendering.
type Sequence struct {
	Triggers []morse.Trigger
	// Total is when the last gap ends, measured from scheduling.
	Total time.Duration

	mu     sync.Mutex
	timers []Timer
}

// Cancel withdraws triggers that have not fired yet and reports how many.
func (s *Sequence) Cancel() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if t.Stop() {
			n++
		}
	}
	return n
}
