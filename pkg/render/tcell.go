// pkg/render/tcell.go
package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/engine"
	"github.com/opd-ai/space-warriors/pkg/input"
)

var tcellColors = map[Color]tcell.Color{
	ColorDefault: tcell.ColorDefault,
	ColorWhite:   tcell.ColorWhite,
	ColorGray:    tcell.ColorGray,
	ColorBlue:    tcell.ColorBlue,
	ColorRed:     tcell.ColorRed,
	ColorGreen:   tcell.ColorGreen,
	ColorYellow:  tcell.ColorYellow,
	ColorCyan:    tcell.ColorAqua,
}

// TcellPresenter draws snapshots on a tcell screen and feeds its key events
// into a ByteStream, so held keys use the same hold window as raw terminals.
type TcellPresenter struct {
	screen tcell.Screen
	keys   *input.ByteStream

	mu     sync.Mutex
	canvas *Canvas
}

// NewTcellPresenter creates a presenter over an uninitialised screen.
func NewTcellPresenter(screen tcell.Screen, keys *input.ByteStream, cfg config.FrontendConfig) *TcellPresenter {
	return &TcellPresenter{
		screen: screen,
		keys:   keys,
		canvas: NewCanvas(0, 0, cfg),
	}
}

// Init initialises the screen and sizes the canvas to it.
func (p *TcellPresenter) Init() error {
	if err := p.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	p.screen.HideCursor()
	p.screen.Clear()

	width, height := p.screen.Size()
	p.mu.Lock()
	p.canvas.Resize(width, height)
	p.mu.Unlock()
	return nil
}

// Close releases the terminal.
func (p *TcellPresenter) Close() {
	p.screen.Fini()
}

// PollEvents forwards screen events until the screen is finalised, then
// closes the key stream.
func (p *TcellPresenter) PollEvents() {
	defer p.keys.Close()
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		p.HandleEvent(ev)
	}
}

// HandleEvent applies a single screen event.
func (p *TcellPresenter) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if name, ok := tcellKeyName(ev); ok {
			p.keys.Press(name)
		}
	case *tcell.EventResize:
		width, height := ev.Size()
		p.mu.Lock()
		p.canvas.Resize(width, height)
		p.mu.Unlock()
		p.screen.Sync()
	}
}

// Draw implements engine.FrameSink.
func (p *TcellPresenter) Draw(snap *engine.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.canvas.Rasterize(snap)
	width, height := p.canvas.Size()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := p.canvas.At(x, y)
			style := tcell.StyleDefault.Foreground(tcellColors[cell.Color])
			if y == 0 && p.canvas.Flash {
				style = style.Background(tcell.ColorMaroon)
			}
			p.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	p.screen.Show()
	return nil
}

func tcellKeyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp, true
	case tcell.KeyDown:
		return input.KeyDown, true
	case tcell.KeyLeft:
		return input.KeyLeft, true
	case tcell.KeyRight:
		return input.KeyRight, true
	case tcell.KeyEscape:
		return input.KeyEsc, true
	case tcell.KeyCtrlC:
		return input.KeyCtrlC, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return input.KeySpace, true
		}
		return string(r), true
	}
	return "", false
}

var _ engine.FrameSink = (*TcellPresenter)(nil)
