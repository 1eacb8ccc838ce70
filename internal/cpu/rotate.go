package cpu

// rlc/rrc/rl/rr/sla/sra/sll/srl implement the eight CB-prefixed shift
// and rotate operations. Each returns the new byte and sets the flags
// itself: C from the bit shifted out, H and N cleared, and S/Z/Y/X/P
// from the result via setSZYXP.
func (c *CPU) rlc(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | b2u8(carry)
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v>>1 | (b2u8(carry) << 7)
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	oldCarry := b2u8(c.flagSet(FlagC))
	carry := v&0x80 != 0
	result := v<<1 | oldCarry
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	oldCarry := b2u8(c.flagSet(FlagC))
	carry := v&0x01 != 0
	result := v>>1 | (oldCarry << 7)
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v << 1
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v&0x80 | v>>1
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

// sll is the undocumented "shift left logical" that shifts in a 1
// rather than a 0.
func (c *CPU) sll(v uint8) uint8 {
	carry := v&0x80 != 0
	result := v<<1 | 1
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v&0x01 != 0
	result := v >> 1
	c.putFlag(FlagC, carry)
	c.clearFlag(FlagH | FlagN)
	c.setSZYXP(result)
	return result
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

var shiftOps = [8]func(c *CPU, v uint8) uint8{
	(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
	(*CPU).sla, (*CPU).sra, (*CPU).sll, (*CPU).srl,
}

var shiftNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

func init() {
	defineBase(0x07, "RLCA", func(c *CPU) {
		carry := c.A&0x80 != 0
		c.A = c.A<<1 | b2u8(carry)
		c.putFlag(FlagC, carry)
		c.clearFlag(FlagH | FlagN)
		c.F = c.F&^(FlagY|FlagX) | (c.A & (FlagY | FlagX))
	})
	defineBase(0x0F, "RRCA", func(c *CPU) {
		carry := c.A&0x01 != 0
		c.A = c.A>>1 | (b2u8(carry) << 7)
		c.putFlag(FlagC, carry)
		c.clearFlag(FlagH | FlagN)
		c.F = c.F&^(FlagY|FlagX) | (c.A & (FlagY | FlagX))
	})
	defineBase(0x17, "RLA", func(c *CPU) {
		oldCarry := b2u8(c.flagSet(FlagC))
		carry := c.A&0x80 != 0
		c.A = c.A<<1 | oldCarry
		c.putFlag(FlagC, carry)
		c.clearFlag(FlagH | FlagN)
		c.F = c.F&^(FlagY|FlagX) | (c.A & (FlagY | FlagX))
	})
	defineBase(0x1F, "RRA", func(c *CPU) {
		oldCarry := b2u8(c.flagSet(FlagC))
		carry := c.A&0x01 != 0
		c.A = c.A>>1 | (oldCarry << 7)
		c.putFlag(FlagC, carry)
		c.clearFlag(FlagH | FlagN)
		c.F = c.F&^(FlagY|FlagX) | (c.A & (FlagY | FlagX))
	})

	for op := uint8(0); op < 8; op++ {
		for reg := uint8(0); reg < 8; reg++ {
			opcode := op<<3 | reg
			o, r := op, reg
			defineCB(opcode, shiftNames[o]+" "+r8Names[r], func(c *CPU) {
				v := c.getR8(r)
				if r == 6 {
					c.tick(1) // internal cycle of the (HL) form
				}
				c.setR8(r, shiftOps[o](c, v))
			})
		}
		o := op
		defineIndexedCB(op<<3|6, shiftNames[o]+" (IX+d)", func(c *CPU, addr uint16) {
			v := c.readByte(addr)
			c.tick(1)
			c.writeByte(addr, shiftOps[o](c, v))
		})
		// Undocumented: DD/FD CB shift opcodes also copy the result
		// into a second register (every reg value except 6).
		for reg := uint8(0); reg < 8; reg++ {
			if reg == 6 {
				continue
			}
			r := reg
			opcode := op<<3 | reg
			defineIndexedCB(opcode, shiftNames[o]+" (IX+d),"+r8Names[r], func(c *CPU, addr uint16) {
				v := c.readByte(addr)
				c.tick(1)
				result := shiftOps[o](c, v)
				c.writeByte(addr, result)
				c.setR8(r, result)
			})
		}
	}
}
