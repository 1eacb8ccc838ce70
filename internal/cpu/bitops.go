package cpu

import "github.com/speccygo/zx48/pkg/bits"

func init() {
	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			b, r := bit, reg
			bitOpcode := 0x40 | b<<3 | r
			// The (HL) forms (r == 6) spend one extra internal T-state
			// after the read.
			defineCB(bitOpcode, "BIT", func(c *CPU) {
				v := c.getR8(r)
				if r == 6 {
					c.tick(1)
				}
				c.testBit(b, v)
			})

			resOpcode := 0x80 | b<<3 | r
			defineCB(resOpcode, "RES", func(c *CPU) {
				v := c.getR8(r)
				if r == 6 {
					c.tick(1)
				}
				c.setR8(r, bits.Reset(v, b))
			})

			setOpcode := 0xC0 | b<<3 | r
			defineCB(setOpcode, "SET", func(c *CPU) {
				v := c.getR8(r)
				if r == 6 {
					c.tick(1)
				}
				c.setR8(r, bits.Set(v, b))
			})
		}

		b := bit
		for reg := uint8(0); reg < 8; reg++ {
			// BIT has no destination register: every sub-field of the
			// 0x40-0x7F DDCB/FDCB range tests the same (IX+d)/(IY+d)
			// byte, it just doesn't write a result anywhere.
			defineIndexedCB(0x40|b<<3|reg, "BIT (IX+d)", func(c *CPU, addr uint16) {
				v := c.readByte(addr)
				c.tick(1)
				c.testBitIndexed(b, v, addr)
			})
		}
		for reg := uint8(0); reg < 8; reg++ {
			if reg == 6 {
				defineIndexedCB(0x80|b<<3|6, "RES (IX+d)", func(c *CPU, addr uint16) {
					v := c.readByte(addr)
					c.tick(1)
					c.writeByte(addr, bits.Reset(v, b))
				})
				defineIndexedCB(0xC0|b<<3|6, "SET (IX+d)", func(c *CPU, addr uint16) {
					v := c.readByte(addr)
					c.tick(1)
					c.writeByte(addr, bits.Set(v, b))
				})
				continue
			}
			r := reg
			defineIndexedCB(0x80|b<<3|reg, "RES (IX+d),"+r8Names[r], func(c *CPU, addr uint16) {
				v := c.readByte(addr)
				c.tick(1)
				result := bits.Reset(v, b)
				c.writeByte(addr, result)
				c.setR8(r, result)
			})
			defineIndexedCB(0xC0|b<<3|reg, "SET (IX+d),"+r8Names[r], func(c *CPU, addr uint16) {
				v := c.readByte(addr)
				c.tick(1)
				result := bits.Set(v, b)
				c.writeByte(addr, result)
				c.setR8(r, result)
			})
		}
	}
}

// testBit sets Z (and S for bit 7) from bit b of v; H is always set, N
// always cleared, and the undocumented Y/X flags copy bits 5 and 3 of
// v. The (HL) form uses this too, so its Y/X also come from v.
func (c *CPU) testBit(b uint8, v uint8) {
	set := bits.Test(v, b)
	c.setFlag(FlagH)
	c.clearFlag(FlagN)
	c.putFlag(FlagZ, !set)
	c.putFlag(FlagP, !set)
	c.putFlag(FlagS, b == 7 && set)
	c.F = c.F&^(FlagY|FlagX) | (v & (FlagY | FlagX))
}

// testBitIndexed is BIT on an (IX+d)/(IY+d) operand: the undocumented
// Y/X flags come from the high byte of the effective address instead
// of the tested byte, another well known quirk.
func (c *CPU) testBitIndexed(b uint8, v uint8, addr uint16) {
	set := bits.Test(v, b)
	c.setFlag(FlagH)
	c.clearFlag(FlagN)
	c.putFlag(FlagZ, !set)
	c.putFlag(FlagP, !set)
	c.putFlag(FlagS, b == 7 && set)
	c.F = c.F&^(FlagY|FlagX) | (uint8(addr>>8) & (FlagY | FlagX))
}
