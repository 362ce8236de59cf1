package sound

import (
	"time"

	"dotdash/audio"
	"dotdash/morse"
)

const (
	Dot          = morse.SoundDot
	Dash         = morse.SoundDash
	Notification = "notification"
	Click        = "click"
)

// Names is the fixed bank. Nothing outside it is ever loaded or played.
var Names = []string{Dot, Dash, Notification, Click}

func IsKnown(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

type Asset struct {
	Name     string
	Location string
}

const assetDir = "/static/sounds/"

var DefaultAssets = AssetsWithExt(".mp3")

// AssetsWithExt returns the bank's locations with a different file extension,
// e.g. ".wav" for generated assets.
func AssetsWithExt(ext string) []Asset {
	out := make([]Asset, len(Names))
	for i, n := range Names {
		out[i] = Asset{Name: n, Location: assetDir + n + ext}
	}
	return out
}

const (
	SynthSampleRate = 44100

	// Morse tone: steady mid pitch
	morseFreq   = 700
	morseVolume = 0.5
	morseDecay  = 4

	// Click: high pitch, short
	clickFreq   = 1200
	clickVolume = 0.5
	clickDecay  = 60

	// Notification: medium pitch double-beep
	notifyFreq   = 900
	notifyVolume = 0.5
	notifyDecay  = 30
)

// Synthesize renders a stand-in for every sound in the bank.
func Synthesize() map[string]*audio.Buffer {
	return map[string]*audio.Buffer{
		Dot:          audio.Tone(SynthSampleRate, morseFreq, morse.DotDuration, morseVolume, morseDecay),
		Dash:         audio.Tone(SynthSampleRate, morseFreq, morse.DashDuration, morseVolume, morseDecay),
		Notification: audio.DoubleTone(SynthSampleRate, notifyFreq, 80*time.Millisecond, 50*time.Millisecond, notifyVolume, notifyDecay),
		Click:        audio.Tone(SynthSampleRate, clickFreq, 30*time.Millisecond, clickVolume, clickDecay),
	}
}
