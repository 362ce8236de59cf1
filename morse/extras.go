package morse

import (
	"strings"
	"unicode/utf8"
)

// Themes replace '.' and '-' with a symbol pair. A request ending in the
// digit n (1-9) selects Themes[n-1].
var Themes = [][2]string{
	{"💜", "💙"},
	{"✨", "💫"},
	{"🔥", "💧"},
	{"💀", "👻"},
	{"🎵", "🎶"},
	{"☀️", "🌙"},
	{"🐾", "🦴"},
	{"🌸", "🌺"},
	{"🔹", "🔸"},
}

// Theme rewrites the symbols of code with theme n. Spaces and '/' are kept.
func Theme(code string, n int) (string, bool) {
	if n < 1 || n > len(Themes) {
		return "", false
	}
	pair := Themes[n-1]
	var sb strings.Builder
	for _, r := range code {
		switch r {
		case '.':
			sb.WriteString(pair[0])
		case '-':
			sb.WriteString(pair[1])
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), true
}

// SplitTheme separates a trailing theme digit from text, so "sos 1" yields
// ("sos", 1, true).
func SplitTheme(text string) (rest string, n int, ok bool) {
	last, size := utf8.DecodeLastRuneInString(text)
	if last < '1' || last > '9' || int(last-'0') > len(Themes) {
		return "", 0, false
	}
	return strings.TrimSpace(text[:len(text)-size]), int(last - '0'), true
}

var eggs = map[string]string{
	"hello world":                 ".... . .-.. .-.. --- / .-- --- .-. .-.. -..",
	"the matrix":                  "AGENT SMITH: 'Mr. Anderson...'",
	"sudo rm -rf /":               "COMMAND NOT RECOGNIZED. SYSTEM INTEGRITY IS SECURE.",
	"shadowheart":                 "CREATOR OF THIS UNIVERSE.",
	"never gonna give you up":     "-. . ...- . .-. / --. --- -. -. .- / --. .. ...- . / -.-- --- ..- / ..- .--.",
	"tell me a joke":              "Why do programmers prefer dark mode? Because light attracts bugs.",
	"what is the meaning of life": "42",
	"show themes":                 "Available themes: 💜💙, ✨💫, 🔥💧, 💀👻, 🎵🎶, ☀️🌙, 🐾🦴, 🌸🌺, 🔹🔸",
}

// EasterEgg returns the canned reply for text, matched case-insensitively.
func EasterEgg(text string) (string, bool) {
	reply, ok := eggs[strings.ToLower(strings.TrimSpace(text))]
	return reply, ok
}

// IsNotation reports whether s consists only of symbols and gaps, i.e. it can
// be played as is.
func IsNotation(s string) bool {
	return s != "" && strings.Trim(s, ".-/ ") == ""
}
