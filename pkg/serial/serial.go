package serial

import (
	"bufio"
	"io"
	"sync"
)

// Port is the character-stream collaborator. Avail reports whether a
// byte is pending; ReadByte is non-blocking only after Avail returned
// true. Writes never fail at this layer.
type Port interface {
	Avail() bool
	ReadByte() byte
	WriteByte(b byte)
	WriteString(s string)
}

// StdPort adapts an io.Reader/io.Writer pair to a Port. Input is pumped
// into a buffered byte channel; writes are serialized.
type StdPort struct {
	in chan byte
	mu sync.Mutex
	w  io.Writer
}

func NewStdPort(r io.Reader, w io.Writer) *StdPort {
	p := &StdPort{
		in: make(chan byte, 256),
		w:  w,
	}
	go p.pump(r)
	return p
}

func (p *StdPort) pump(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			close(p.in)
			return
		}
		p.in <- b
	}
}

func (p *StdPort) Avail() bool {
	return len(p.in) > 0
}

func (p *StdPort) ReadByte() byte {
	return <-p.in
}

func (p *StdPort) WriteByte(b byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.w.Write([]byte{b})
}

func (p *StdPort) WriteString(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	io.WriteString(p.w, s)
}
