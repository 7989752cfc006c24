package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateTerminal(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
		errContains   string
	}{
		{"typical", 80, 24, false, ""},
		{"minimum", MinTerminalWidth, MinTerminalHeight, false, ""},
		{"maximum", MaxTerminalWidth, MaxTerminalHeight, false, ""},
		{"too narrow", 39, 24, true, "too small"},
		{"too short", 80, 11, true, "too small"},
		{"zero", 0, 0, true, "too small"},
		{"too wide", 513, 24, true, "too large"},
		{"too tall", 80, 257, true, "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTerminal(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTerminal(%d, %d) = %v, expected error %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var termErr *TerminalError
			if !errors.As(err, &termErr) {
				t.Fatalf("ValidateTerminal() error type = %T, expected *TerminalError", err)
			}
			if termErr.Width != tt.width || termErr.Height != tt.height {
				t.Errorf("TerminalError size = %dx%d, expected %dx%d", termErr.Width, termErr.Height, tt.width, tt.height)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "ace", "ace"},
		{"punctuation kept", "ace_pilot-2.0", "ace_pilot-2.0"},
		{"trimmed", "  ace  ", "ace"},
		{"escape sequence dropped", "ace\x1b[31mred", "ace31mred"},
		{"spaces dropped", "ace pilot", "acepilot"},
		{"unicode letters kept", "pilóto", "pilóto"},
		{"invalid utf8 dropped", "ace\xff", "ace"},
		{"empty", "", DefaultUsername},
		{"nothing printable", "\x00\x07;", DefaultUsername},
		{"truncated", strings.Repeat("a", 40), strings.Repeat("a", MaxUsernameLen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeUsername(tt.input); got != tt.expected {
				t.Errorf("SanitizeUsername(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{"192.0.2.1:51234", "192.0.2.1"},
		{"[2001:db8::1]:22", "2001:db8::1"},
		{"192.0.2.1", "192.0.2.1"},
	}

	for _, tt := range tests {
		if got := HostOf(tt.addr); got != tt.expected {
			t.Errorf("HostOf(%q) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}

// fakeClock is a settable time source.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func newTestLimiter(maxRequests int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(maxRequests, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, _ := newTestLimiter(3, time.Minute)
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if !rl.Allow("192.0.2.1:5000") {
			t.Errorf("Allow() #%d = false, expected true", i)
		}
	}
	if rl.Allow("192.0.2.1:5001") {
		t.Error("Allow() from a new port of the same host = true, expected false")
	}
	if !rl.Allow("192.0.2.2:5000") {
		t.Error("Allow() from another host = false, expected true")
	}
	if rl.Clients() != 2 {
		t.Errorf("Clients() = %d, expected 2", rl.Clients())
	}
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)
	defer rl.Close()

	rl.Allow("192.0.2.1:1")
	rl.Allow("192.0.2.1:1")
	if rl.Allow("192.0.2.1:1") {
		t.Fatal("Allow() with an empty bucket = true, expected false")
	}

	clock.t = clock.t.Add(15 * time.Second)
	if rl.Allow("192.0.2.1:1") {
		t.Error("Allow() after a quarter window = true, expected false")
	}

	clock.t = clock.t.Add(15 * time.Second)
	if !rl.Allow("192.0.2.1:1") {
		t.Error("Allow() after half a window = false, expected one token")
	}
	if rl.Allow("192.0.2.1:1") {
		t.Error("second Allow() after half a window = true, expected false")
	}

	clock.t = clock.t.Add(10 * time.Minute)
	for i := 0; i < 2; i++ {
		if !rl.Allow("192.0.2.1:1") {
			t.Errorf("Allow() #%d after a long wait = false, expected a full bucket", i)
		}
	}
	if rl.Allow("192.0.2.1:1") {
		t.Error("bucket refilled past its capacity")
	}
}

func TestRateLimiter_RemoveInactiveClients(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)
	defer rl.Close()

	rl.Allow("192.0.2.1:1")
	clock.t = clock.t.Add(90 * time.Second)
	rl.Allow("192.0.2.2:1")

	clock.t = clock.t.Add(60 * time.Second)
	rl.removeInactiveClients()

	if rl.Clients() != 1 {
		t.Errorf("Clients() = %d after cleanup, expected 1", rl.Clients())
	}
}

func TestRateLimiter_CloseTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Close()
	rl.Close()
}
