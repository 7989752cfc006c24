// pkg/render/ansi.go
package render

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
)

const (
	enterAltScreen = "\033[?1049h"
	leaveAltScreen = "\033[?1049l"
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	clearScreen    = "\033[2J"
	cursorHome     = "\033[H"
	resetStyle     = "\033[0m"
	flashStyle     = "\033[41m"
)

var ansiColors = map[Color]string{
	ColorDefault: "\033[39m",
	ColorWhite:   "\033[97m",
	ColorGray:    "\033[90m",
	ColorBlue:    "\033[94m",
	ColorRed:     "\033[91m",
	ColorGreen:   "\033[92m",
	ColorYellow:  "\033[93m",
	ColorCyan:    "\033[96m",
}

// ANSIPresenter draws snapshots to a raw-mode terminal stream using ANSI
// escape sequences. It is safe to Resize from another goroutine while the
// runner calls Draw.
type ANSIPresenter struct {
	mu     sync.Mutex
	out    *bufio.Writer
	canvas *Canvas
}

// NewANSIPresenter creates a presenter writing frames of width by height
// cells to w.
func NewANSIPresenter(w io.Writer, width, height int, cfg config.FrontendConfig) *ANSIPresenter {
	return &ANSIPresenter{
		out:    bufio.NewWriterSize(w, 16384),
		canvas: NewCanvas(width, height, cfg),
	}
}

// Init switches to the alternate screen and hides the cursor.
func (p *ANSIPresenter) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.WriteString(enterAltScreen + hideCursor + clearScreen)
	return p.out.Flush()
}

// Close restores the cursor and the main screen.
func (p *ANSIPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.WriteString(resetStyle + showCursor + leaveAltScreen)
	return p.out.Flush()
}

// Resize changes the frame size, typically after a window change.
func (p *ANSIPresenter) Resize(width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.canvas.Resize(width, height)
	p.out.WriteString(clearScreen)
}

// Draw implements engine.FrameSink.
func (p *ANSIPresenter) Draw(snap *engine.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.canvas.Rasterize(snap)
	width, height := p.canvas.Size()

	p.out.WriteString(cursorHome)
	current := Color(255)
	for y := 0; y < height; y++ {
		if y > 0 {
			p.out.WriteString("\r\n")
		}
		if y == 0 && p.canvas.Flash {
			p.out.WriteString(flashStyle)
		}
		for x := 0; x < width; x++ {
			cell := p.canvas.At(x, y)
			if cell.Color != current {
				p.out.WriteString(ansiColors[cell.Color])
				current = cell.Color
			}
			p.out.WriteRune(cell.Rune)
		}
		if y == 0 && p.canvas.Flash {
			p.out.WriteString(resetStyle)
			current = Color(255)
		}
	}
	p.out.WriteString(resetStyle)

	if err := p.out.Flush(); err != nil {
		return fmt.Errorf("flush frame %d: %w", snap.Tick, err)
	}
	return nil
}

var _ engine.FrameSink = (*ANSIPresenter)(nil)
