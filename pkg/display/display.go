package display

// Device is the bitmap-panel collaborator. Images are page-major column
// bitmaps as produced by framebuf, pages of 8 rows each.
type Device interface {
	Init(fast bool) error
	On()
	Clear()
	DrawImage(img []byte, x, y, width, pages int)
	DrawText(s string, x, y int)
}

// Nop discards every frame.
type Nop struct{}

func (Nop) Init(fast bool) error { return nil }

func (Nop) On() {}

func (Nop) Clear() {}

func (Nop) DrawImage(img []byte, x, y, width, pages int) {}

func (Nop) DrawText(s string, x, y int) {}
