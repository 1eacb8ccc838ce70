package cpu

import (
	"github.com/speccygo/zx48/internal/bus"
	"github.com/speccygo/zx48/internal/tape"
	"github.com/speccygo/zx48/internal/types"
	"github.com/speccygo/zx48/internal/ula"
)

// InterruptMode is the Z80's IM 0/1/2 selector.
type InterruptMode uint8

const (
	IM0 InterruptMode = iota
	IM1
	IM2
)

// CPU is the Zilog Z80 interpreter at the heart of the core. It holds
// no reference to the bus, ULA or tape player between calls: every
// operation that needs one receives it as an argument to Step, which
// stashes it in an unexported field for the duration of that single
// call only (cleared at the end), so nothing here survives a frame
// boundary except what Stater snapshots.
type CPU struct {
	Registers

	SP, PC uint16

	IFF1, IFF2 bool
	IM         InterruptMode

	Halted bool
	// EIPending is set by EI's own handler for the duration of the
	// Step call that executes it, suppressing that same call's
	// interrupt-accept check so "EI; RETI" can never be interrupted
	// between the two instructions.
	EIPending bool

	// Tstates is the running count of T-states this CPU has consumed;
	// it is never reset, and the Frame Driver reads it to set each
	// frame's target.
	Tstates uint64

	bus  *bus.Bus
	ula  *ula.ULA
	tape *tape.Player

	// useIY selects IX vs IY for the duration of a single DD/FD
	// prefixed instruction; see decode.go's executeIndexed.
	useIY bool
}

// New returns a freshly reset CPU. PC, SP and the flags start at the
// values the Spectrum's ROM expects on a cold power-up; callers that
// want post-ROM state (e.g. snapshot loading) overwrite them via
// Stater.Load.
func New() *CPU {
	c := &CPU{}
	wireRegisterPairs(&c.Registers)
	c.SP = 0xFFFF
	return c
}

// Step executes exactly one instruction (or, if halted, one NOP-
// equivalent tick), then checks for a pending interrupt accept. It
// returns the number of T-states consumed.
func (c *CPU) Step(b *bus.Bus, u *ula.ULA, tp *tape.Player) uint8 {
	c.bus, c.ula, c.tape = b, u, tp
	start := c.Tstates

	if c.Halted {
		// The real chip keeps re-fetching HALT as a NOP until an
		// interrupt arrives; it never executes the instruction after
		// HALT before responding to one.
		c.tick(4)
		if u.IntPending && c.IFF1 {
			c.Halted = false
		}
		c.maybeAcceptInterrupt()
		c.bus, c.ula, c.tape = nil, nil, nil
		return uint8(c.Tstates - start)
	}

	opcode := c.fetchOpcode()
	c.execute(opcode)

	// EI sets IFF1 synchronously (misc.go), so without this the accept
	// check below would fire between EI and the instruction after it.
	// EIPending is only true here when the instruction just executed
	// was EI itself; the instruction immediately following EI always
	// runs to completion before interrupts are considered again.
	if !c.EIPending {
		c.maybeAcceptInterrupt()
	}
	c.EIPending = false

	c.bus, c.ula, c.tape = nil, nil, nil
	return uint8(c.Tstates - start)
}

func (c *CPU) maybeAcceptInterrupt() {
	if !c.ula.IntPending || !c.IFF1 {
		return
	}
	c.ula.IntPending = false
	c.Halted = false
	c.IFF1, c.IFF2 = false, false

	switch c.IM {
	case IM0, IM1:
		c.push16(c.PC)
		c.PC = 0x0038
		c.tick(13)
	case IM2:
		c.push16(c.PC)
		vector := uint16(c.I)<<8 | 0xFF
		c.PC = c.bus.Read16(vector)
		c.tick(19)
	}
}

// tick advances the running T-state counter and drives the ULA and
// tape player forward by the same number of cycles, matching the
// Frame Driver's per-instruction ordering (spec.md §5).
func (c *CPU) tick(cycles uint8) {
	c.Tstates += uint64(cycles)
	if c.ula != nil {
		c.ula.Tick(cycles)
	}
	if c.tape != nil {
		c.tape.Update(c.Tstates)
		if c.tape.Playing() {
			c.ula.EarIn = c.tape.EarBit()
		}
	}
}

// fetchOpcode performs an M1 (opcode fetch) cycle: 4 T-states plus any
// memory contention, and the refresh-register increment that only M1
// cycles cause. It is used for the first byte of every instruction
// and for each CB/ED/DD/FD prefix byte and the opcode byte following
// it.
func (c *CPU) fetchOpcode() uint8 {
	addr := c.PC
	v := c.bus.Read8(addr)
	c.PC++
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
	c.contendedTick(addr, 4)
	return v
}

// fetchByte reads a plain (non-M1) byte from PC, such as an immediate
// operand or an (IX+d)/(IY+d) displacement: 3 T-states plus contention,
// no refresh-register effect.
func (c *CPU) fetchByte() uint8 {
	addr := c.PC
	v := c.bus.Read8(addr)
	c.PC++
	c.contendedTick(addr, 3)
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

// contendedTick charges the base M1/memory-access cycles plus any ULA
// contention delay for addr, then ticks the shared components.
func (c *CPU) contendedTick(addr uint16, cycles uint8) {
	if bus.IsContended(addr) {
		delay := ula.ContentionDelay(int(c.ula.Scanline), int(c.ula.ScanlineTick))
		if delay > 0 {
			c.tick(delay)
		}
	}
	c.tick(cycles)
}

func (c *CPU) readByte(addr uint16) uint8 {
	v := c.bus.Read8(addr)
	c.contendedTick(addr, 3)
	return v
}

func (c *CPU) writeByte(addr uint16, val uint8) {
	c.bus.Write8(addr, val)
	c.contendedTick(addr, 3)
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.readByte(addr)
	hi := c.readByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeWord(addr uint16, val uint16) {
	c.writeByte(addr, uint8(val))
	c.writeByte(addr+1, uint8(val>>8))
}

func (c *CPU) push16(v uint16) {
	c.SP--
	c.writeByte(c.SP, uint8(v>>8))
	c.SP--
	c.writeByte(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.readByte(c.SP)
	c.SP++
	hi := c.readByte(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) portIn(port uint16) uint8 {
	v := c.bus.PortIn(port, c.ula)
	c.tick(4)
	return v
}

func (c *CPU) portOut(port uint16, val uint8) {
	c.bus.PortOut(port, val, c.ula)
	c.tick(4)
}

var _ types.Stater = (*CPU)(nil)

func (c *CPU) Load(s *types.State) {
	c.A, c.F = s.Read8(), s.Read8()
	c.B, c.C = s.Read8(), s.Read8()
	c.D, c.E = s.Read8(), s.Read8()
	c.H, c.L = s.Read8(), s.Read8()
	c.A_, c.F_ = s.Read8(), s.Read8()
	c.B_, c.C_ = s.Read8(), s.Read8()
	c.D_, c.E_ = s.Read8(), s.Read8()
	c.H_, c.L_ = s.Read8(), s.Read8()
	c.IX = s.Read16()
	c.IY = s.Read16()
	c.I, c.R = s.Read8(), s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IFF1 = s.ReadBool()
	c.IFF2 = s.ReadBool()
	c.IM = InterruptMode(s.Read8())
	c.Halted = s.ReadBool()
	c.EIPending = s.ReadBool()
	c.Tstates = s.Read64()
}

func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write8(c.A_)
	s.Write8(c.F_)
	s.Write8(c.B_)
	s.Write8(c.C_)
	s.Write8(c.D_)
	s.Write8(c.E_)
	s.Write8(c.H_)
	s.Write8(c.L_)
	s.Write16(c.IX)
	s.Write16(c.IY)
	s.Write8(c.I)
	s.Write8(c.R)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IFF1)
	s.WriteBool(c.IFF2)
	s.Write8(uint8(c.IM))
	s.WriteBool(c.Halted)
	s.WriteBool(c.EIPending)
	s.Write64(c.Tstates)
}
