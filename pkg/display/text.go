package display

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Text renders each frame as ASCII art to a writer, one frame per
// DrawText call. Useful on a plain terminal and in tests.
type Text struct {
	mu    sync.Mutex
	w     io.Writer
	img   []byte
	width int
	pages int
	label string
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) Init(fast bool) error {
	return nil
}

func (t *Text) On() {}

func (t *Text) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.img = nil
	t.label = ""
}

func (t *Text) DrawImage(img []byte, x, y, width, pages int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.img = append(t.img[:0], img...)
	t.width = width
	t.pages = pages
}

// DrawText sets the frame label and flushes the frame.
func (t *Text) DrawText(s string, x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.label = s

	var sb strings.Builder
	sb.WriteString(t.label)
	sb.WriteByte('\n')
	for row := 0; row < t.pages*8; row++ {
		for col := 0; col < t.width; col++ {
			if t.img[(row/8)*t.width+col]&(1<<(row%8)) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(t.w, sb.String())
}
