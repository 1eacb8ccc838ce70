package machine

import (
	"testing"

	"github.com/speccygo/zx48/internal/bus"
	"github.com/speccygo/zx48/internal/tape"
	"github.com/speccygo/zx48/internal/types"
	"github.com/speccygo/zx48/internal/ula"
	"github.com/stretchr/testify/require"
)

func romWithHaltLoop() []byte {
	rom := make([]byte, bus.RomSize)
	rom[0] = 0x76 // HALT; interrupts start disabled, so the CPU stays halted with PC at 1
	return rom
}

func TestFrameAdvancesByOneFrameOfTstates(t *testing.T) {
	m, err := New(romWithHaltLoop())
	require.NoError(t, err)

	before := m.CPU.Tstates
	m.Frame()
	after := m.CPU.Tstates

	require.GreaterOrEqual(t, after-before, uint64(ula.TStatesPerFrame))
}

func TestPauseSkipsFrameStepping(t *testing.T) {
	m, err := New(romWithHaltLoop())
	require.NoError(t, err)

	m.Pause()
	steps := m.Frame()
	require.Equal(t, 0, steps)
	require.Equal(t, uint64(0), m.CPU.Tstates)

	m.Resume()
	require.Greater(t, m.Frame(), 0)
}

func TestPressKeyReachesULAMatrix(t *testing.T) {
	m, err := New(romWithHaltLoop())
	require.NoError(t, err)

	m.PressKey(0, 0)
	require.Equal(t, uint8(0xFE), m.ULA.Keyboard[0])
	m.ReleaseKey(0, 0)
	require.Equal(t, uint8(0xFF), m.ULA.Keyboard[0])
}

func TestInsertTapeStartsPlayback(t *testing.T) {
	m, err := New(romWithHaltLoop())
	require.NoError(t, err)

	m.InsertTape([]tape.Block{tape.PureTone{PulseLength: 100, PulseCount: 4}})
	m.Tape.Play()
	require.True(t, m.Tape.Playing())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m, err := New(romWithHaltLoop())
	require.NoError(t, err)
	m.CPU.A = 0x42
	m.ULA.Border = 3
	m.Bus.Write8(0x8000, 0x99)

	buf := types.NewState()
	m.Save(buf)

	restored, err := New(romWithHaltLoop())
	require.NoError(t, err)
	restored.Load(types.StateFromBytes(buf.Bytes()))

	require.Equal(t, uint8(0x42), restored.CPU.A)
	require.Equal(t, uint8(3), restored.ULA.Border)
	require.Equal(t, uint8(0x99), restored.Bus.Read8(0x8000))
}
