package framebuf

const (
	Width = 96
	Rows  = 16
	Pages = Rows / 8
)

// Buffer is a 96x16 one-bit frame laid out page-major: two banks of 96
// column bytes, bit 0 at the top row of each page. Row 0 is the top of
// the panel.
type Buffer struct {
	pix [Width * Pages]byte
}

func New() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Set(x, y int) {
	if x < 0 || x >= Width || y < 0 || y >= Rows {
		return
	}
	b.pix[(y/8)*Width+x] |= 1 << (y % 8)
}

func (b *Buffer) Unset(x, y int) {
	if x < 0 || x >= Width || y < 0 || y >= Rows {
		return
	}
	b.pix[(y/8)*Width+x] &^= 1 << (y % 8)
}

func (b *Buffer) At(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Rows {
		return false
	}
	return b.pix[(y/8)*Width+x]&(1<<(y%8)) != 0
}

// ShiftLeft scrolls the frame one column left, discarding column 0 and
// zeroing the new rightmost column.
func (b *Buffer) ShiftLeft() {
	for p := 0; p < Pages; p++ {
		page := b.pix[p*Width : (p+1)*Width]
		copy(page, page[1:])
		page[Width-1] = 0
	}
}

func (b *Buffer) Clear() {
	clear(b.pix[:])
}

// Bytes exposes the raw page-major frame for the display device.
func (b *Buffer) Bytes() []byte {
	return b.pix[:]
}
