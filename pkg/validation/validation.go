// Package validation checks what SSH clients send before a game session
// starts: connection rate, terminal size and the login name.
package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Terminal size limits in cells. Below the minimum the HUD and minimap do
// not fit; above the maximum a frame grows past what a client can redraw at
// the tick rate.
const (
	MinTerminalWidth  = 40
	MinTerminalHeight = 12
	MaxTerminalWidth  = 512
	MaxTerminalHeight = 256
)

// MaxUsernameLen bounds the name shown in logs.
const MaxUsernameLen = 32

// DefaultUsername replaces names with nothing printable left.
const DefaultUsername = "pilot"

// TerminalError describes a terminal that cannot host a game.
type TerminalError struct {
	Width, Height int
	Reason        string
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %dx%d %s", e.Width, e.Height, e.Reason)
}

// ValidateTerminal checks a PTY size.
func ValidateTerminal(width, height int) error {
	if width < MinTerminalWidth || height < MinTerminalHeight {
		return &TerminalError{
			Width:  width,
			Height: height,
			Reason: fmt.Sprintf("is too small (need at least %dx%d)", MinTerminalWidth, MinTerminalHeight),
		}
	}
	if width > MaxTerminalWidth || height > MaxTerminalHeight {
		return &TerminalError{
			Width:  width,
			Height: height,
			Reason: fmt.Sprintf("is too large (at most %dx%d)", MaxTerminalWidth, MaxTerminalHeight),
		}
	}
	return nil
}

// SanitizeUsername makes an SSH login name safe to log and print. Invalid
// UTF-8 and anything that is not a letter, digit, '-', '_' or '.' is dropped,
// and the result is truncated to MaxUsernameLen runes.
func SanitizeUsername(name string) string {
	if !utf8.ValidString(name) {
		name = strings.ToValidUTF8(name, "")
	}

	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(name) {
		if n == MaxUsernameLen {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
			n++
		}
	}

	if b.Len() == 0 {
		return DefaultUsername
	}
	return b.String()
}
