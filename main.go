package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"dotdash/assets"
	"dotdash/doctor"
	"dotdash/log"
	"dotdash/morse"
	"dotdash/sound"
)

var version = "dev"

const (
	envAssets     = "DOTDASH_ASSETS"
	defaultAssets = "http://127.0.0.1:10000"
	playbackTail  = 200 * time.Millisecond
	soundWait     = time.Second
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("dotdash", flag.ContinueOnError)
	assetsFlag := fs.String("assets", "", "Asset source: base URL or directory holding static/sounds/ (default $DOTDASH_ASSETS or "+defaultAssets+")")
	extFlag := fs.String("ext", ".mp3", "Sound file extension under static/sounds/")
	soundFlag := fs.String("sound", "", "Play one sound: dot, dash, notification or click")
	volumeFlag := fs.Float64("volume", 1, "Volume for -sound")
	morseFlag := fs.String("morse", "", "Play Morse notation, e.g. \"... --- ...\"")
	textFlag := fs.String("text", "", "Encode text to Morse and play it")
	genFlag := fs.String("gen", "", "Write synthesized sounds under <dir>/static/sounds/ and exit")
	genFormatFlag := fs.String("gen-format", "wav", "Format for -gen: wav or flac")
	doctorFlag := fs.Bool("doctor", false, "Run audio diagnostics and exit")
	logPathFlag := fs.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := fs.Bool("version", false, "Print version and exit")
	fs.SetOutput(stdout)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *versionFlag {
		fmt.Fprintf(stdout, "dotdash %s\n", version)
		return 0
	}

	if *genFlag != "" {
		written, err := generate(*genFlag, *genFormatFlag)
		if err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
			return 1
		}
		for _, w := range written {
			fmt.Fprintf(stdout, "  %s: %d frames, %.1f KB, encoded in %v\n",
				filepath.Base(w.Path), w.Frames, float64(w.Bytes)/1024, w.EncodeTime.Round(time.Microsecond))
		}
		fmt.Fprintf(stdout, "Wrote %d sounds to %s\n", len(sound.Names), filepath.Join(*genFlag, "static", "sounds"))
		return 0
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		return 1
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	source := *assetsFlag
	if source == "" {
		source = os.Getenv(envAssets)
	}
	if source == "" {
		source = defaultAssets
	}
	fetcher := assets.New(source)
	soundAssets := sound.AssetsWithExt(*extFlag)

	if *doctorFlag {
		return doctor.Run(stdout, doctor.Config{
			Fetcher:     fetcher,
			Assets:      soundAssets,
			Interactive: isTerminal(stdin),
		})
	}

	m := sound.New(sound.Config{Fetcher: fetcher, Assets: soundAssets})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	m.Initialize(ctx)
	cancel()
	defer m.Close()

	if st := m.Status(); !st.ContextReady {
		log.Warn("audio output unavailable, playback disabled for this run")
		fmt.Fprintln(stdout, "Warning: audio output unavailable; playback will be silent")
	} else if len(st.Loaded) < len(sound.Names) {
		fmt.Fprintf(stdout, "Warning: loaded %d of %d sounds from %s (see %s)\n",
			len(st.Loaded), len(sound.Names), source, log.Dir())
	}

	switch {
	case *soundFlag != "":
		if !sound.IsKnown(*soundFlag) {
			fmt.Fprintf(stdout, "Error: unknown sound %q (use %s)\n", *soundFlag, strings.Join(sound.Names, ", "))
			return 1
		}
		m.PlaySound(*soundFlag, sound.Options{Volume: *volumeFlag})
		time.Sleep(soundWait)
	case *morseFlag != "":
		playAndWait(m, *morseFlag)
	case *textFlag != "":
		display, code := translate(*textFlag)
		fmt.Fprintln(stdout, display)
		playAndWait(m, code)
	default:
		interactive(m, stdin, stdout)
	}
	return 0
}

// translate picks, in order: a canned reply, a themed encoding for a trailing
// digit, decoding of notation, plain encoding. code is what gets played and
// may be empty.
func translate(line string) (display, code string) {
	if reply, ok := morse.EasterEgg(line); ok {
		if morse.IsNotation(reply) {
			return reply, reply
		}
		return reply, ""
	}
	if rest, n, ok := morse.SplitTheme(line); ok && rest != "" {
		code = morse.Encode(rest)
		themed, _ := morse.Theme(code, n)
		return themed, code
	}
	if morse.IsCode(line) {
		return morse.Decode(line), line
	}
	code = morse.Encode(line)
	return code, code
}

func playAndWait(m *sound.Manager, code string) {
	if code == "" {
		return
	}
	if seq := m.PlayMorseSequence(code); seq != nil {
		time.Sleep(seq.Total + playbackTail)
	}
}

// interactive translates and plays each input line. ":toggle" flips sound on
// and off, ":stop" withdraws what is left of the current sequence.
func interactive(m *sound.Manager, stdin io.Reader, stdout io.Writer) {
	prompt := isTerminal(stdin)
	if prompt {
		fmt.Fprintln(stdout, "Type text or Morse (.-/), end with 1-9 for a symbol theme. :toggle mutes, :stop cancels, Ctrl+D quits.")
	}

	var current *sound.Sequence
	scanner := bufio.NewScanner(stdin)
	for {
		if prompt {
			fmt.Fprint(stdout, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == ":toggle":
			if m.Toggle() {
				fmt.Fprintln(stdout, "sound on")
			} else {
				fmt.Fprintln(stdout, "sound off")
			}
			continue
		case line == ":stop":
			current.Cancel()
			continue
		}

		display, code := translate(line)
		fmt.Fprintln(stdout, display)
		if code == "" {
			continue
		}
		current = m.PlayMorseSequence(code)
		if !prompt && current != nil {
			time.Sleep(current.Total)
		}
	}
	if current != nil && prompt {
		current.Cancel()
	}
	time.Sleep(playbackTail)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func generate(dir, format string) ([]assets.Written, error) {
	switch format {
	case "wav", "flac":
	default:
		return nil, fmt.Errorf("unknown format %q (use wav or flac)", format)
	}
	bank := sound.Synthesize()
	var written []assets.Written
	for _, a := range sound.AssetsWithExt("." + format) {
		path := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(a.Location, "/")))
		w, err := assets.Write(path, bank[a.Name])
		if err != nil {
			return written, err
		}
		written = append(written, w)
	}
	return written, nil
}
