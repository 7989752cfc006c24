package input

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// ByteStream parses raw terminal bytes into key state. Terminals deliver only
// key presses and auto-repeats, never releases, so a key counts as held for a
// short window after its most recent byte.
type ByteStream struct {
	keymap Keymap
	hold   time.Duration
	now    func() time.Time

	mu       sync.Mutex
	lastSeen [actionCount]time.Time
	closed   bool
}

// NewByteStream creates a parser that resolves keys through keymap.
func NewByteStream(keymap Keymap, hold time.Duration) *ByteStream {
	return &ByteStream{
		keymap: keymap,
		hold:   hold,
		now:    time.Now,
	}
}

// Feed parses one chunk of terminal input. Arrow keys are recognised only
// when the whole CSI sequence is in the chunk; a lone ESC is the Esc key.
func (s *ByteStream) Feed(p []byte) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < len(p); i++ {
		b := p[i]
		if b == 0x1b && i+2 < len(p) && (p[i+1] == '[' || p[i+1] == 'O') {
			if name, ok := arrowName(p[i+2]); ok {
				s.pressLocked(name, now)
				i += 2
				continue
			}
		}
		if name, ok := byteName(b); ok {
			s.pressLocked(name, now)
		}
	}
}

// Press records a named key, for frontends that decode key events
// themselves.
func (s *ByteStream) Press(name string) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressLocked(name, now)
}

func (s *ByteStream) pressLocked(name string, now time.Time) {
	if a, ok := s.keymap.Lookup(name); ok {
		s.lastSeen[a] = now
	}
}

// ReadFrom feeds everything read from r until it fails. It implements
// io.ReaderFrom so a session can hand its input stream straight over.
func (s *ByteStream) ReadFrom(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	buf := make([]byte, 64)
	var total int64
	for {
		n, err := br.Read(buf)
		if n > 0 {
			total += int64(n)
			s.Feed(buf[:n])
		}
		if err != nil {
			s.Close()
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}

// Close marks the stream as ended.
func (s *ByteStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Closed reports whether the underlying reader has ended.
func (s *ByteStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// KeyState returns the actions seen within the hold window.
func (s *ByteStream) KeyState() KeyState {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var keys KeyState
	for a := Action(0); a < actionCount; a++ {
		seen := s.lastSeen[a]
		keys[a] = !seen.IsZero() && now.Sub(seen) < s.hold
	}
	return keys
}

func arrowName(b byte) (string, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return "", false
}

func byteName(b byte) (string, bool) {
	switch {
	case b == 0x03:
		return KeyCtrlC, true
	case b == 0x1b:
		return KeyEsc, true
	case b == ' ':
		return KeySpace, true
	case b >= 'a' && b <= 'z':
		return string(rune(b)), true
	case b >= 'A' && b <= 'Z':
		return string(rune(b - 'A' + 'a')), true
	}
	return "", false
}
