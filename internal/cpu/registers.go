// Package cpu implements the Zilog Z80 instruction set used by the
// ZX Spectrum 48K: the register file, flag computation, and a set of
// fixed-size opcode dispatch tables for the base, CB, ED, DD, FD and
// DD/FD-CB prefixed instruction forms.
package cpu

// Register is an 8-bit CPU register.
type Register = uint8

// RegisterPair gives 16-bit access to two adjacent 8-bit registers,
// high byte first, without requiring the pair to be stored separately
// from its halves.
type RegisterPair struct {
	Hi, Lo *Register
}

// Get returns the 16-bit value of the pair.
func (p *RegisterPair) Get() uint16 {
	return uint16(*p.Hi)<<8 | uint16(*p.Lo)
}

// Set stores a 16-bit value into the pair.
func (p *RegisterPair) Set(v uint16) {
	*p.Hi = uint8(v >> 8)
	*p.Lo = uint8(v)
}

// Inc adds 1 to the pair, wrapping modulo 2^16.
func (p *RegisterPair) Inc() {
	p.Set(p.Get() + 1)
}

// Dec subtracts 1 from the pair, wrapping modulo 2^16.
func (p *RegisterPair) Dec() {
	p.Set(p.Get() - 1)
}

// Registers holds the Z80's main and shadow register sets plus the
// index registers. SP and PC live directly on CPU since nothing else
// addresses their halves.
type Registers struct {
	A, F Register
	B, C Register
	D, E Register
	H, L Register

	A_, F_ Register
	B_, C_ Register
	D_, E_ Register
	H_, L_ Register

	IX, IY uint16

	I, R Register

	BC, DE, HL, AF *RegisterPair
}

// wireRegisterPairs links each pair's Hi/Lo pointers to r's own fields.
// It must run after r reaches its final address (i.e. after the owning
// CPU is heap-allocated) since a later copy of Registers would leave
// the pairs pointing at the old location.
func wireRegisterPairs(r *Registers) {
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
	r.AF = &RegisterPair{&r.A, &r.F}
}

// IXH returns the high byte of IX (undocumented but addressable).
func (r *Registers) IXH() Register { return uint8(r.IX >> 8) }

// IXL returns the low byte of IX.
func (r *Registers) IXL() Register { return uint8(r.IX) }

// SetIXH sets the high byte of IX.
func (r *Registers) SetIXH(v Register) { r.IX = uint16(v)<<8 | (r.IX & 0xFF) }

// SetIXL sets the low byte of IX.
func (r *Registers) SetIXL(v Register) { r.IX = r.IX&0xFF00 | uint16(v) }

// IYH returns the high byte of IY.
func (r *Registers) IYH() Register { return uint8(r.IY >> 8) }

// IYL returns the low byte of IY.
func (r *Registers) IYL() Register { return uint8(r.IY) }

// SetIYH sets the high byte of IY.
func (r *Registers) SetIYH(v Register) { r.IY = uint16(v)<<8 | (r.IY & 0xFF) }

// SetIYL sets the low byte of IY.
func (r *Registers) SetIYL(v Register) { r.IY = r.IY&0xFF00 | uint16(v) }

// exchangeAFShadow swaps AF with the shadow AF'.
func (r *Registers) exchangeAFShadow() {
	r.A, r.A_ = r.A_, r.A
	r.F, r.F_ = r.F_, r.F
}

// exx swaps BC, DE, HL with their shadow counterparts.
func (r *Registers) exx() {
	r.B, r.B_ = r.B_, r.B
	r.C, r.C_ = r.C_, r.C
	r.D, r.D_ = r.D_, r.D
	r.E, r.E_ = r.E_, r.E
	r.H, r.H_ = r.H_, r.H
	r.L, r.L_ = r.L_, r.L
}
