package audio

import (
	"errors"
	"sync"
)

var ErrFakeDecode = errors.New("fake: undecodable data")

// Played is one recorded call to FakeContext.Play.
type Played struct {
	Buffer *Buffer
	Gain   float64
}

// FakeContext records playback instead of producing sound. Decode accepts
// anything Decode accepts, plus payloads registered with Register.
type FakeContext struct {
	mu     sync.Mutex
	known  map[string]*Buffer
	played []Played
	closed bool
}

func NewFakeContext() *FakeContext {
	return &FakeContext{known: make(map[string]*Buffer)}
}

// Register makes Decode return buf for the exact payload data.
func (f *FakeContext) Register(data []byte, buf *Buffer) {
	f.mu.Lock()
	f.known[string(data)] = buf
	f.mu.Unlock()
}

func (f *FakeContext) Decode(data []byte) (*Buffer, error) {
	f.mu.Lock()
	buf, ok := f.known[string(data)]
	f.mu.Unlock()
	if ok {
		return buf, nil
	}
	if _, ok := Sniff(data); ok {
		return Decode(data)
	}
	return nil, ErrFakeDecode
}

func (f *FakeContext) Play(buf *Buffer, gain float64) error {
	f.mu.Lock()
	f.played = append(f.played, Played{Buffer: buf, Gain: gain})
	f.mu.Unlock()
	return nil
}

func (f *FakeContext) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *FakeContext) Played() []Played {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Played(nil), f.played...)
}

func (f *FakeContext) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
