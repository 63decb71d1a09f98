package term

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

const consoleLines = 8

// UI is a tcell screen acting as both the bitmap panel and the operator
// console: the pixel frame renders as block characters on top, serial
// traffic scrolls in a line ring underneath. Key presses feed the serial
// input; Ctrl-C and ESC cancel the pipeline.
type UI struct {
	screen tcell.Screen
	in     chan byte

	mu      sync.Mutex
	img     []byte
	width   int
	pages   int
	label   string
	lines   []string
	partial string
}

func NewUI() (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	return &UI{
		screen: screen,
		in:     make(chan byte, 64),
	}, nil
}

// Run pumps key events into the serial input until the context ends,
// then restores the terminal.
func (u *UI) Run(ctx context.Context, cancel context.CancelFunc) func() error {
	return func() error {
		defer u.screen.Fini()
		events := make(chan tcell.Event, 16)
		quit := make(chan struct{})
		go u.screen.ChannelEvents(events, quit)
		done := ctx.Done()
		for {
			select {
			case <-done:
				close(quit)
				return nil
			case ev := <-events:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					switch ev.Key() {
					case tcell.KeyCtrlC, tcell.KeyEscape:
						cancel()
					case tcell.KeyEnter:
						u.push('\r')
					case tcell.KeyRune:
						if r := ev.Rune(); r < 128 {
							u.push(byte(r))
						}
					}
				case *tcell.EventResize:
					u.screen.Sync()
				}
			}
		}
	}
}

// push drops the byte when the reader is far behind rather than stall
// the event loop.
func (u *UI) push(b byte) {
	select {
	case u.in <- b:
	default:
	}
}

// serial.Port

func (u *UI) Avail() bool {
	return len(u.in) > 0
}

func (u *UI) ReadByte() byte {
	return <-u.in
}

func (u *UI) WriteByte(b byte) {
	u.WriteString(string(rune(b)))
}

func (u *UI) WriteString(s string) {
	u.mu.Lock()
	for _, r := range s {
		switch r {
		case '\r':
		case '\n':
			u.lines = append(u.lines, u.partial)
			if len(u.lines) > consoleLines {
				u.lines = u.lines[1:]
			}
			u.partial = ""
		default:
			u.partial += string(r)
		}
	}
	u.mu.Unlock()
	u.render()
}

// display.Device

func (u *UI) Init(fast bool) error {
	return nil
}

func (u *UI) On() {}

func (u *UI) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.img = nil
	u.label = ""
}

func (u *UI) DrawImage(img []byte, x, y, width, pages int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.img = append(u.img[:0], img...)
	u.width = width
	u.pages = pages
}

func (u *UI) DrawText(s string, x, y int) {
	u.mu.Lock()
	u.label = s
	u.mu.Unlock()
	u.render()
}

func (u *UI) render() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.screen.Clear()
	style := tcell.StyleDefault

	putString(u.screen, 0, 0, u.label, style.Bold(true))
	rows := u.pages * 8
	for y := 0; len(u.img) > 0 && y < rows; y++ {
		for x := 0; x < u.width; x++ {
			if u.img[(y/8)*u.width+x]&(1<<(y%8)) != 0 {
				u.screen.SetContent(x, y+2, '█', nil, style)
			}
		}
	}

	base := rows + 3
	for i, line := range u.lines {
		putString(u.screen, 0, base+i, line, style.Dim(true))
	}
	putString(u.screen, 0, base+len(u.lines), "> "+u.partial, style)
	u.screen.Show()
}

func putString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}
