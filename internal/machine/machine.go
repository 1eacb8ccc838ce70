// Package machine wires the Bus, ULA, TapePlayer and Z80 core together
// into the Frame Driver (spec.md §4.5): the cooperative, single-
// threaded loop that steps the CPU until one video frame's worth of
// T-states has elapsed.
package machine

import (
	"github.com/speccygo/zx48/internal/bus"
	"github.com/speccygo/zx48/internal/cpu"
	"github.com/speccygo/zx48/internal/tape"
	"github.com/speccygo/zx48/internal/types"
	"github.com/speccygo/zx48/internal/ula"
	"github.com/speccygo/zx48/pkg/log"
)

// Machine is the Spectrum 48K core. It holds the four components the
// Frame Driver steps together and nothing else; no component holds a
// reference back to Machine or to any of its siblings.
type Machine struct {
	CPU  *cpu.CPU
	Bus  *bus.Bus
	ULA  *ula.ULA
	Tape *tape.Player

	Log log.Logger

	paused bool
}

// Opt configures a Machine at construction time.
type Opt func(m *Machine)

// WithLogger overrides the default null logger.
func WithLogger(l log.Logger) Opt {
	return func(m *Machine) { m.Log = l }
}

// WithBorderColour sets the ULA's border colour before the first frame.
func WithBorderColour(c uint8) Opt {
	return func(m *Machine) { m.ULA.Border = c & 0x07 }
}

// New returns a Machine with a 16K ROM already loaded and 48K of zeroed
// RAM. The caller is responsible for InsertTape if tape input is needed.
func New(rom []byte, opts ...Opt) (*Machine, error) {
	b := bus.New()
	if err := b.LoadROM(rom); err != nil {
		return nil, err
	}

	m := &Machine{
		CPU:  cpu.New(),
		Bus:  b,
		ULA:  ula.New(nil),
		Tape: tape.New(),
		Log:  log.NewNullLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}
	m.ULA.Log = m.Log

	return m, nil
}

// InsertTape loads a parsed block sequence into the tape player,
// replacing whatever was previously inserted.
func (m *Machine) InsertTape(blocks []tape.Block) {
	m.Tape.LoadTape(blocks)
	m.Log.Infof("tape inserted: %d blocks", len(blocks))
}

// Paused reports whether Frame is a no-op step counter only.
func (m *Machine) Paused() bool { return m.paused }

// Pause and Resume gate Frame without touching any component state, so
// a paused Machine can still be snapshotted or have its tape advanced
// by the caller directly.
func (m *Machine) Pause()  { m.paused = true }
func (m *Machine) Resume() { m.paused = false }

// Frame runs the CPU for exactly one video frame's worth of T-states
// (ula.TStatesPerFrame), feeding the ULA and tape player their own
// per-instruction ticks along the way via CPU.Step, then returns the
// number of CPU instructions it took to do so. It is the sole entry
// point the host event loop calls once per 1/50s.
func (m *Machine) Frame() int {
	if m.paused {
		return 0
	}

	m.ULA.StartFrame()
	target := m.CPU.Tstates + ula.TStatesPerFrame

	steps := 0
	for m.CPU.Tstates < target {
		m.CPU.Step(m.Bus, m.ULA, m.Tape)
		steps++
	}
	m.ULA.FlushFrame()

	return steps
}

// PressKey and ReleaseKey forward to the ULA's keyboard matrix; row and
// col follow the Spectrum's half-row port-0xFE encoding (spec.md §4.2).
func (m *Machine) PressKey(row, col uint8)   { m.ULA.KeyDown(row, col) }
func (m *Machine) ReleaseKey(row, col uint8) { m.ULA.KeyUp(row, col) }

// SetEarIn drives the ULA's tape-input latch directly; used when the
// host plays tape audio itself rather than through InsertTape.
func (m *Machine) SetEarIn(level bool) { m.ULA.EarIn = level }

var _ types.Stater = (*Machine)(nil)

// Load restores every component's state from a single snapshot buffer,
// in the fixed order Save writes them.
func (m *Machine) Load(s *types.State) {
	m.CPU.Load(s)
	m.Bus.Load(s)
	m.ULA.Load(s)
	m.Tape.Load(s)
}

// Save writes every component's state into a single snapshot buffer.
func (m *Machine) Save(s *types.State) {
	m.CPU.Save(s)
	m.Bus.Save(s)
	m.ULA.Save(s)
	m.Tape.Save(s)
}
