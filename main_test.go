package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"dotdash/assets"
	"dotdash/audio"
	"dotdash/sound"
)

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-version"}, strings.NewReader(""), &out); code != 0 {
		t.Fatalf("run = %d, want 0", code)
	}
	if !strings.Contains(out.String(), "dotdash dev") {
		t.Errorf("got %q", out.String())
	}
}

func TestBadFlag(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"-nope"}, strings.NewReader(""), &out); code != 2 {
		t.Errorf("run = %d, want 2", code)
	}
}

func TestGenerate(t *testing.T) {
	for _, format := range []string{"wav", "flac"} {
		dir := t.TempDir()
		var out bytes.Buffer
		if code := run([]string{"-gen", dir, "-gen-format", format}, strings.NewReader(""), &out); code != 0 {
			t.Fatalf("%s: run = %d, output %q", format, code, out.String())
		}
		if !strings.Contains(out.String(), "click."+format+": 1323 frames") {
			t.Errorf("%s: missing per-file report in %q", format, out.String())
		}

		fetcher := assets.NewDirFetcher(dir)
		for _, a := range sound.AssetsWithExt("." + format) {
			data, err := fetcher.Fetch(context.Background(), a.Location)
			if err != nil {
				t.Fatalf("%s: %v", a.Location, err)
			}
			buf, err := audio.Decode(data)
			if err != nil {
				t.Fatalf("%s: %v", a.Location, err)
			}
			if buf.SampleRate != sound.SynthSampleRate || len(buf.Frames) == 0 {
				t.Errorf("%s: rate=%d frames=%d", a.Location, buf.SampleRate, len(buf.Frames))
			}
		}
	}
}

func TestGenerateBadFormat(t *testing.T) {
	if _, err := generate(t.TempDir(), "ogg"); err == nil {
		t.Error("expected error for ogg")
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		line        string
		wantDisplay string
		wantCode    string
	}{
		{"sos", "... --- ...", "... --- ..."},
		{"sos 1", "💜💜💜 💙💙💙 💜💜💜", "... --- ..."},
		{"... --- ...", "SOS", "... --- ..."},
		{"the matrix", "AGENT SMITH: 'Mr. Anderson...'", ""},
		{"Hello World", ".... . .-.. .-.. --- / .-- --- .-. .-.. -..", ".... . .-.. .-.. --- / .-- --- .-. .-.. -.."},
		{"5", "-....", "-...."},
	}
	for _, tt := range tests {
		display, code := translate(tt.line)
		if display != tt.wantDisplay || code != tt.wantCode {
			t.Errorf("translate(%q) = %q, %q, want %q, %q", tt.line, display, code, tt.wantDisplay, tt.wantCode)
		}
	}
}

func TestInteractiveCommands(t *testing.T) {
	ac := audio.NewFakeContext()
	m := sound.New(sound.Config{
		NewContext: func() (audio.Context, error) { return ac, nil },
		Fetcher:    assets.NewDirFetcher(t.TempDir()),
	})
	m.Initialize(context.Background())

	var out bytes.Buffer
	interactive(m, strings.NewReader(":toggle\nthe matrix\n:stop\n:toggle\n"), &out)

	got := out.String()
	for _, want := range []string{"sound off", "AGENT SMITH", "sound on"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if n := len(ac.Played()); n != 0 {
		t.Errorf("played %d sounds, want 0", n)
	}
}
