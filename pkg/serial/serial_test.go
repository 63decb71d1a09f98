package serial

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStdPortRead(t *testing.T) {
	var out bytes.Buffer
	p := NewStdPort(strings.NewReader("15\r"), &out)

	require.Eventually(t, p.Avail, time.Second, time.Millisecond)
	require.Equal(t, byte('1'), p.ReadByte())
	require.Equal(t, byte('5'), p.ReadByte())
	require.Equal(t, byte('\r'), p.ReadByte())
	require.False(t, p.Avail())
}

func TestStdPortWrite(t *testing.T) {
	var out bytes.Buffer
	p := NewStdPort(strings.NewReader(""), &out)

	p.WriteByte('x')
	p.WriteString("yz")
	require.Equal(t, "xyz", out.String())
}

func TestStdPortAvailAfterEOF(t *testing.T) {
	var out bytes.Buffer
	p := NewStdPort(strings.NewReader("a"), &out)

	require.Eventually(t, p.Avail, time.Second, time.Millisecond)
	require.Equal(t, byte('a'), p.ReadByte())
	// the polling reader just sees no input after EOF
	require.Never(t, p.Avail, 20*time.Millisecond, 5*time.Millisecond)
}
