// Package snapshot adapts the two common Spectrum 48K snapshot
// formats, .sna and .z80 (version 1), directly onto a Machine's
// component fields so it can be saved to or restored from either on
// disk. Both formats predate this core and carry their own fixed byte
// layouts; this package only translates between them and the Machine,
// it does not define a new wire format of its own.
package snapshot

import (
	"github.com/speccygo/zx48/internal/bus"
	"github.com/speccygo/zx48/internal/cpu"
	"github.com/speccygo/zx48/internal/machine"
	"github.com/speccygo/zx48/internal/zxerr"
)

const snaSize = 27 + bus.RamSize

// LoadSNA restores a Machine from a 49,179-byte .sna image: a 27-byte
// register header followed by a flat 48K RAM dump. The PC is not
// stored in the header; it is popped off the stack at (SP), exactly
// as the original format's loader does.
func LoadSNA(raw []byte, m *machine.Machine) error {
	if len(raw) != snaSize {
		return zxerr.InvalidSnapshot{Reason: "SNA image must be exactly 49179 bytes"}
	}

	c := m.CPU
	c.I = raw[0]
	c.H_, c.L_ = hiLo(le16(raw[1:]))
	c.D_, c.E_ = hiLo(le16(raw[3:]))
	c.B_, c.C_ = hiLo(le16(raw[5:]))
	c.A_, c.F_ = hiLo(le16(raw[7:]))
	c.HL.Set(le16(raw[9:]))
	c.DE.Set(le16(raw[11:]))
	c.BC.Set(le16(raw[13:]))
	c.IY = le16(raw[15:])
	c.IX = le16(raw[17:])
	iff := raw[19]
	c.IFF1 = iff&0x04 != 0
	c.IFF2 = c.IFF1
	c.R = raw[20]
	c.AF.Set(le16(raw[21:]))
	c.SP = le16(raw[23:])
	c.IM = cpu.InterruptMode(raw[25] & 0x03)
	m.ULA.Border = raw[26] & 0x07

	if err := m.Bus.LoadRAM(raw[27 : 27+bus.RamSize]); err != nil {
		return err
	}

	// PC is fetched by popping the stack, which also adjusts SP, the
	// same side effect the original loader code relies on.
	c.PC = m.Bus.Read16(c.SP)
	c.SP += 2

	return nil
}

// SaveSNA serializes a Machine to a 49,179-byte .sna image. Since the
// format has no field for PC, it is pushed onto the snapshot's stack
// image first, mirroring what LoadSNA expects to pop back off.
func SaveSNA(m *machine.Machine) []byte {
	c := m.CPU
	out := make([]byte, snaSize)

	out[0] = c.I
	putLE16(out[1:], pair16(c.H_, c.L_))
	putLE16(out[3:], pair16(c.D_, c.E_))
	putLE16(out[5:], pair16(c.B_, c.C_))
	putLE16(out[7:], pair16(c.A_, c.F_))
	putLE16(out[9:], c.HL.Get())
	putLE16(out[11:], c.DE.Get())
	putLE16(out[13:], c.BC.Get())
	putLE16(out[15:], c.IY)
	putLE16(out[17:], c.IX)
	if c.IFF2 {
		out[19] = 0x04
	}
	out[20] = c.R
	putLE16(out[21:], c.AF.Get())

	sp := c.SP - 2
	putLE16(out[23:], sp)
	out[25] = uint8(c.IM)
	out[26] = m.ULA.Border

	copy(out[27:], m.Bus.RAM())

	// Stash PC at the snapshot stack image so LoadSNA's pop recovers it.
	ramOffset := int(sp) - bus.ContendedStart
	if ramOffset >= 0 && ramOffset+1 < bus.RamSize {
		putLE16(out[27+ramOffset:], c.PC)
	}

	return out
}

// z80V1Header is the fixed 30-byte header every .z80 snapshot opens
// with, version 1 or later.
type z80V1Header struct {
	A, F       uint8
	BC, HL     uint16
	PC, SP     uint16
	I          uint8
	R7         uint8 // bit 7 of R, plus misc flags
	Misc1      uint8
	DE         uint16
	BC_, DE_   uint16
	HL_        uint16
	A_, F_     uint8
	IY, IX     uint16
	IFF1, IFF2 uint8
	Misc2      uint8
}

// LoadZ80 restores a Machine from a version-1 .z80 image: PC != 0 in
// the header means an uncompressed 48K RAM image follows; PC == 0
// signals a version 2/3 extended header this adapter does not parse
// (spec.md scopes the snapshot format itself out of the core; this is
// a best-effort bridge for the common case, not a full implementation
// of every later revision).
func LoadZ80(raw []byte, m *machine.Machine) error {
	if len(raw) < 30 {
		return zxerr.InvalidSnapshot{Reason: "Z80 image shorter than its own header"}
	}

	h := z80V1Header{
		A: raw[0], F: raw[1],
		BC: le16(raw[2:]), HL: le16(raw[4:]),
		PC: le16(raw[6:]), SP: le16(raw[8:]),
		I: raw[10], R7: raw[11],
		Misc1: raw[12],
		DE:    le16(raw[13:]),
		BC_:   le16(raw[15:]), DE_: le16(raw[17:]), HL_: le16(raw[19:]),
		A_: raw[21], F_: raw[22],
		IY: le16(raw[23:]), IX: le16(raw[25:]),
		IFF1: raw[27], IFF2: raw[28],
		Misc2: raw[29],
	}
	if h.PC == 0 {
		return zxerr.InvalidSnapshot{Reason: "Z80 version 2/3 extended headers are not supported"}
	}

	c := m.CPU
	c.A, c.F = h.A, h.F
	c.BC.Set(h.BC)
	c.HL.Set(h.HL)
	c.PC = h.PC
	c.SP = h.SP
	c.I = h.I
	r := h.R7 & 0x7F
	if h.Misc1&0x01 != 0 {
		r |= 0x80
	}
	c.R = r
	c.DE.Set(h.DE)
	c.B_, c.C_ = hiLo(h.BC_)
	c.D_, c.E_ = hiLo(h.DE_)
	c.H_, c.L_ = hiLo(h.HL_)
	c.A_, c.F_ = h.A_, h.F_
	c.IY, c.IX = h.IY, h.IX
	c.IFF1 = h.IFF1 != 0
	c.IFF2 = h.IFF2 != 0
	c.IM = cpu.InterruptMode(h.Misc2 & 0x03)
	m.ULA.Border = (h.Misc1 >> 1) & 0x07

	body := raw[30:]
	var ram []byte
	if h.Misc1&0x20 != 0 {
		ram = unpackZ80RLE(body, bus.RamSize)
	} else {
		ram = body
	}
	return m.Bus.LoadRAM(ram)
}

// unpackZ80RLE expands the .z80 format's simple run-length encoding:
// 0xED 0xED count byte repeats byte count times; any other byte is
// literal. Decoding stops once want bytes have been produced.
func unpackZ80RLE(body []byte, want int) []byte {
	out := make([]byte, 0, want)
	for i := 0; i < len(body) && len(out) < want; {
		if i+4 <= len(body) && body[i] == 0xED && body[i+1] == 0xED {
			count := int(body[i+2])
			value := body[i+3]
			for n := 0; n < count; n++ {
				out = append(out, value)
			}
			i += 4
			continue
		}
		out = append(out, body[i])
		i++
	}
	return out
}

func le16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }

func putLE16(b []byte, v uint16) {
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
}

func hiLo(v uint16) (hi, lo uint8) { return uint8(v >> 8), uint8(v) }

func pair16(hi, lo uint8) uint16 { return uint16(hi)<<8 | uint16(lo) }
