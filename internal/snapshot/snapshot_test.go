package snapshot

import (
	"testing"

	"github.com/speccygo/zx48/internal/bus"
	"github.com/speccygo/zx48/internal/machine"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *machine.Machine {
	t.Helper()
	m, err := machine.New(make([]byte, bus.RomSize))
	require.NoError(t, err)
	return m
}

func TestSNARoundTrip(t *testing.T) {
	m := newTestMachine(t)
	m.CPU.A = 0x77
	m.CPU.BC.Set(0x1234)
	m.CPU.PC = 0x8123
	m.CPU.SP = 0x7F00
	m.ULA.Border = 5
	m.Bus.Write8(0x7F00, 0x23)
	m.Bus.Write8(0x7F01, 0x81)

	raw := SaveSNA(m)
	require.Len(t, raw, snaSize)

	restored := newTestMachine(t)
	require.NoError(t, LoadSNA(raw, restored))

	require.Equal(t, uint8(0x77), restored.CPU.A)
	require.Equal(t, uint16(0x1234), restored.CPU.BC.Get())
	require.Equal(t, uint8(5), restored.ULA.Border)
	require.Equal(t, uint16(0x8123), restored.CPU.PC)
}

func TestLoadSNAWrongSizeErrors(t *testing.T) {
	err := LoadSNA(make([]byte, 100), newTestMachine(t))
	require.Error(t, err)
}

func TestUnpackZ80RLEExpandsRuns(t *testing.T) {
	packed := []byte{0x01, 0x02, 0xED, 0xED, 0x03, 0x99, 0x04}
	got := unpackZ80RLE(packed, 7)
	require.Equal(t, []byte{0x01, 0x02, 0x99, 0x99, 0x99, 0x04}, got)
}

func TestLoadZ80RejectsExtendedHeader(t *testing.T) {
	raw := make([]byte, 30) // PC field (bytes 6-7) left at zero
	err := LoadZ80(raw, newTestMachine(t))
	require.Error(t, err)
}

func TestLoadZ80UncompressedBody(t *testing.T) {
	raw := make([]byte, 30+bus.RamSize)
	raw[0] = 0x11 // A
	raw[6], raw[7] = 0x00, 0x80 // PC = 0x8000
	raw[8], raw[9] = 0x00, 0xFF // SP = 0xFF00
	raw[30] = 0xAB // first RAM byte

	m := newTestMachine(t)
	require.NoError(t, LoadZ80(raw, m))
	require.Equal(t, uint8(0x11), m.CPU.A)
	require.Equal(t, uint16(0x8000), m.CPU.PC)
	require.Equal(t, uint8(0xAB), m.Bus.Read8(0x4000))
}
