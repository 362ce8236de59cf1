// Package morse converts between text and Morse notation and lays notation
// out on a timeline of sound triggers.
//
// Notation uses '.' and '-' for symbols, a single space between letters and
// '/' between words. Timing follows the International ratios: a dash is three
// dots, symbols within a letter are one dot apart, letters three and words seven.
package morse

import (
	"strings"
	"time"
)

const (
	DotDuration   = 100 * time.Millisecond
	DashDuration  = DotDuration * 3
	PauseDuration = DotDuration

	LetterGap = PauseDuration * 3
	WordGap   = PauseDuration * 7
)

const (
	SoundDot  = "dot"
	SoundDash = "dash"
)

// Trigger is a sound to start Offset after the sequence begins.
type Trigger struct {
	Offset time.Duration
	Sound  string
}

// Timeline scans code left to right with a running offset. Characters other
// than '.', '-', ' ' and '/' are skipped without moving the offset. total is
// the offset after the last character.
func Timeline(code string) (triggers []Trigger, total time.Duration) {
	var offset time.Duration
	for _, c := range code {
		switch c {
		case '.':
			triggers = append(triggers, Trigger{Offset: offset, Sound: SoundDot})
			offset += DotDuration + PauseDuration
		case '-':
			triggers = append(triggers, Trigger{Offset: offset, Sound: SoundDash})
			offset += DashDuration + PauseDuration
		case ' ':
			offset += LetterGap
		case '/':
			offset += WordGap
		}
	}
	return triggers, offset
}

var table = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.", 'G': "--.", 'H': "....",
	'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---", 'P': ".--.",
	'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'1': ".----", '2': "..---", '3': "...--", '4': "....-", '5': ".....",
	'6': "-....", '7': "--...", '8': "---..", '9': "----.", '0': "-----",
	',': "--..--", '.': ".-.-.-", '?': "..--..", '/': "-..-.", '-': "-....-", '(': "-.--.", ')': "-.--.-",
	' ': "/",
}

var reverse = func() map[string]rune {
	m := make(map[string]rune, len(table))
	for r, code := range table {
		m[code] = r
	}
	return m
}()

// Encode renders text as notation. Letters are separated by a space and a
// space in the input becomes "/". Runes with no code are dropped.
func Encode(text string) string {
	codes := make([]string, 0, len(text))
	for _, r := range strings.ToUpper(text) {
		if code, ok := table[r]; ok {
			codes = append(codes, code)
		}
	}
	return strings.Join(codes, " ")
}

// Decode reverses Encode. Unknown letter codes are dropped.
func Decode(code string) string {
	code = strings.ReplaceAll(code, "/", " / ")
	words := strings.Split(code, " / ")
	var sb strings.Builder
	for i, word := range words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for _, letter := range strings.Split(word, " ") {
			if r, ok := reverse[letter]; ok && letter != "/" {
				sb.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// IsCode reports whether text already looks like notation rather than prose.
func IsCode(text string) bool {
	return strings.ContainsAny(text, ".-/")
}
