package cpu

func (c *CPU) addA(v uint8, withCarry bool) {
	carry := uint8(0)
	if withCarry && c.flagSet(FlagC) {
		carry = 1
	}
	a := c.A
	result := a + v + carry
	c.putFlag(FlagC, uint16(a)+uint16(v)+uint16(carry) > 0xFF)
	c.putFlag(FlagH, halfCarryAdd8(a, v, carry))
	c.putFlag(FlagV, overflowAdd(a, v, result))
	c.clearFlag(FlagN)
	c.A = result
	c.setSZYX(c.A)
}

func (c *CPU) subA(v uint8, withCarry bool) {
	borrow := uint8(0)
	if withCarry && c.flagSet(FlagC) {
		borrow = 1
	}
	a := c.A
	result := a - v - borrow
	c.putFlag(FlagC, int16(a)-int16(v)-int16(borrow) < 0)
	c.putFlag(FlagH, halfCarrySub8(a, v, borrow))
	c.putFlag(FlagV, overflowSub(a, v, result))
	c.setFlag(FlagN)
	c.A = result
	c.setSZYX(c.A)
}

func (c *CPU) andA(v uint8) {
	c.A &= v
	c.setSZYXP(c.A)
	c.setFlag(FlagH)
	c.clearFlag(FlagN | FlagC)
}

func (c *CPU) xorA(v uint8) {
	c.A ^= v
	c.setSZYXP(c.A)
	c.clearFlag(FlagH | FlagN | FlagC)
}

func (c *CPU) orA(v uint8) {
	c.A |= v
	c.setSZYXP(c.A)
	c.clearFlag(FlagH | FlagN | FlagC)
}

// cpA is SUB without storing the result. The undocumented Y/X flags
// are copied from the operand rather than the result - a well known
// Z80 quirk that distinguishes CP from SUB/SBC.
func (c *CPU) cpA(v uint8) {
	a := c.A
	result := a - v
	c.putFlag(FlagC, a < v)
	c.putFlag(FlagH, halfCarrySub8(a, v, 0))
	c.putFlag(FlagV, overflowSub(a, v, result))
	c.setFlag(FlagN)
	c.F = c.F&^(FlagS|FlagZ|FlagY|FlagX) | (result & FlagS) | (v & (FlagY | FlagX))
	if result == 0 {
		c.setFlag(FlagZ)
	} else {
		c.clearFlag(FlagZ)
	}
}

func (c *CPU) incR8(v uint8) uint8 {
	result := v + 1
	c.putFlag(FlagV, v == 0x7F)
	c.putFlag(FlagH, v&0x0F == 0x0F)
	c.clearFlag(FlagN)
	c.setSZYX(result)
	return result
}

func (c *CPU) decR8(v uint8) uint8 {
	result := v - 1
	c.putFlag(FlagV, v == 0x80)
	c.putFlag(FlagH, v&0x0F == 0)
	c.setFlag(FlagN)
	c.setSZYX(result)
	return result
}

var aluOps = [8]func(c *CPU, v uint8){
	func(c *CPU, v uint8) { c.addA(v, false) },
	func(c *CPU, v uint8) { c.addA(v, true) },
	func(c *CPU, v uint8) { c.subA(v, false) },
	func(c *CPU, v uint8) { c.subA(v, true) },
	func(c *CPU, v uint8) { c.andA(v) },
	func(c *CPU, v uint8) { c.xorA(v) },
	func(c *CPU, v uint8) { c.orA(v) },
	func(c *CPU, v uint8) { c.cpA(v) },
}

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

func init() {
	for op := uint8(0); op < 8; op++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 | op<<3 | src
			o, s := op, src
			defineBase(opcode, aluNames[o]+r8Names[s], func(c *CPU) {
				aluOps[o](c, c.getR8(s))
			})
			if src == 4 || src == 5 {
				defineIndexed(opcode, aluNames[o]+"IXH/L", func(c *CPU) {
					var v uint8
					if s == 4 {
						v = c.indexHi()
					} else {
						v = c.indexLo()
					}
					aluOps[o](c, v)
				})
			}
		}
		o := op
		immOpcode := 0xC6 | op<<3
		defineBase(immOpcode, aluNames[o]+"n", func(c *CPU) {
			aluOps[o](c, c.fetchByte())
		})
	}

	for idx := uint8(0); idx < 8; idx++ {
		if idx == 6 {
			continue
		}
		opcode := 0x04 | idx<<3
		i := idx
		defineBase(opcode, "INC "+r8Names[i], func(c *CPU) { c.setR8(i, c.incR8(c.getR8(i))) })
		opcodeDec := 0x05 | idx<<3
		defineBase(opcodeDec, "DEC "+r8Names[i], func(c *CPU) { c.setR8(i, c.decR8(c.getR8(i))) })
	}
	defineBase(0x34, "INC (HL)", func(c *CPU) {
		addr := c.HL.Get()
		v := c.readByte(addr)
		c.tick(1)
		c.writeByte(addr, c.incR8(v))
	})
	defineBase(0x35, "DEC (HL)", func(c *CPU) {
		addr := c.HL.Get()
		v := c.readByte(addr)
		c.tick(1)
		c.writeByte(addr, c.decR8(v))
	})
	defineIndexed(0x34, "INC (IX+d)", func(c *CPU) {
		addr := c.indexedAddr()
		v := c.readByte(addr)
		c.tick(1)
		c.writeByte(addr, c.incR8(v))
	})
	defineIndexed(0x35, "DEC (IX+d)", func(c *CPU) {
		addr := c.indexedAddr()
		v := c.readByte(addr)
		c.tick(1)
		c.writeByte(addr, c.decR8(v))
	})
	defineIndexed(0x24, "INC IXH", func(c *CPU) { c.setIndexHi(c.incR8(c.indexHi())) })
	defineIndexed(0x25, "DEC IXH", func(c *CPU) { c.setIndexHi(c.decR8(c.indexHi())) })
	defineIndexed(0x2C, "INC IXL", func(c *CPU) { c.setIndexLo(c.incR8(c.indexLo())) })
	defineIndexed(0x2D, "DEC IXL", func(c *CPU) { c.setIndexLo(c.decR8(c.indexLo())) })

	defineIndexed(0x86, "ADD A,(IX+d)", func(c *CPU) { c.addA(c.readByte(c.indexedAddr()), false) })
	defineIndexed(0x8E, "ADC A,(IX+d)", func(c *CPU) { c.addA(c.readByte(c.indexedAddr()), true) })
	defineIndexed(0x96, "SUB (IX+d)", func(c *CPU) { c.subA(c.readByte(c.indexedAddr()), false) })
	defineIndexed(0x9E, "SBC A,(IX+d)", func(c *CPU) { c.subA(c.readByte(c.indexedAddr()), true) })
	defineIndexed(0xA6, "AND (IX+d)", func(c *CPU) { c.andA(c.readByte(c.indexedAddr())) })
	defineIndexed(0xAE, "XOR (IX+d)", func(c *CPU) { c.xorA(c.readByte(c.indexedAddr())) })
	defineIndexed(0xB6, "OR (IX+d)", func(c *CPU) { c.orA(c.readByte(c.indexedAddr())) })
	defineIndexed(0xBE, "CP (IX+d)", func(c *CPU) { c.cpA(c.readByte(c.indexedAddr())) })

	// 16-bit INC/DEC: no flags affected, 6 T-states (2 extra over the
	// 4-cycle opcode fetch).
	defineBase(0x03, "INC BC", func(c *CPU) { c.tick(2); c.BC.Inc() })
	defineBase(0x13, "INC DE", func(c *CPU) { c.tick(2); c.DE.Inc() })
	defineBase(0x23, "INC HL", func(c *CPU) { c.tick(2); c.HL.Inc() })
	defineBase(0x33, "INC SP", func(c *CPU) { c.tick(2); c.SP++ })
	defineBase(0x0B, "DEC BC", func(c *CPU) { c.tick(2); c.BC.Dec() })
	defineBase(0x1B, "DEC DE", func(c *CPU) { c.tick(2); c.DE.Dec() })
	defineBase(0x2B, "DEC HL", func(c *CPU) { c.tick(2); c.HL.Dec() })
	defineBase(0x3B, "DEC SP", func(c *CPU) { c.tick(2); c.SP-- })
	defineIndexed(0x23, "INC IX", func(c *CPU) { c.tick(2); c.setIndexReg(c.indexReg() + 1) })
	defineIndexed(0x2B, "DEC IX", func(c *CPU) { c.tick(2); c.setIndexReg(c.indexReg() - 1) })

	defineBase(0x09, "ADD HL,BC", func(c *CPU) { c.add16(c.HL, c.BC.Get()) })
	defineBase(0x19, "ADD HL,DE", func(c *CPU) { c.add16(c.HL, c.DE.Get()) })
	defineBase(0x29, "ADD HL,HL", func(c *CPU) { c.add16(c.HL, c.HL.Get()) })
	defineBase(0x39, "ADD HL,SP", func(c *CPU) { c.add16(c.HL, c.SP) })
	defineIndexed(0x09, "ADD IX,BC", func(c *CPU) { c.addIndex16(c.BC.Get()) })
	defineIndexed(0x19, "ADD IX,DE", func(c *CPU) { c.addIndex16(c.DE.Get()) })
	defineIndexed(0x29, "ADD IX,IX", func(c *CPU) { c.addIndex16(c.indexReg()) })
	defineIndexed(0x39, "ADD IX,SP", func(c *CPU) { c.addIndex16(c.SP) })

	defineED(0x4A, "ADC HL,BC", func(c *CPU) { c.adcHL(c.BC.Get()) })
	defineED(0x5A, "ADC HL,DE", func(c *CPU) { c.adcHL(c.DE.Get()) })
	defineED(0x6A, "ADC HL,HL", func(c *CPU) { c.adcHL(c.HL.Get()) })
	defineED(0x7A, "ADC HL,SP", func(c *CPU) { c.adcHL(c.SP) })
	defineED(0x42, "SBC HL,BC", func(c *CPU) { c.sbcHL(c.BC.Get()) })
	defineED(0x52, "SBC HL,DE", func(c *CPU) { c.sbcHL(c.DE.Get()) })
	defineED(0x62, "SBC HL,HL", func(c *CPU) { c.sbcHL(c.HL.Get()) })
	defineED(0x72, "SBC HL,SP", func(c *CPU) { c.sbcHL(c.SP) })

	defineBase(0x27, "DAA", func(c *CPU) { c.daa() })
	defineBase(0x2F, "CPL", func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagH | FlagN)
		c.F = c.F&^(FlagY|FlagX) | (c.A & (FlagY | FlagX))
	})
	defineBase(0x3F, "CCF", func(c *CPU) {
		halfFromOldCarry := c.flagSet(FlagC)
		c.putFlag(FlagH, halfFromOldCarry)
		c.F ^= FlagC
		c.clearFlag(FlagN)
		c.F = c.F&^(FlagY|FlagX) | (c.A & (FlagY | FlagX))
	})
	defineBase(0x37, "SCF", func(c *CPU) {
		c.setFlag(FlagC)
		c.clearFlag(FlagH | FlagN)
		c.F = c.F&^(FlagY|FlagX) | (c.A & (FlagY | FlagX))
	})
	negFn := func(c *CPU) {
		v := c.A
		c.A = 0
		c.subA(v, false)
	}
	// The Z80's incomplete ED decoding means NEG also answers at these
	// unused slots; real software occasionally relies on it.
	for _, op := range []uint8{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		defineED(op, "NEG", negFn)
	}
}

// add16 implements ADD HL,rr: only C, H, N and the undocumented Y/X
// bits (from the result's high byte) are affected.
func (c *CPU) add16(dst *RegisterPair, operand uint16) {
	a := dst.Get()
	result := uint32(a) + uint32(operand)
	c.tick(7)
	c.putFlag(FlagC, result > 0xFFFF)
	c.putFlag(FlagH, (a&0xFFF)+(operand&0xFFF) > 0xFFF)
	c.clearFlag(FlagN)
	c.F = c.F&^(FlagY|FlagX) | (uint8(result>>8) & (FlagY | FlagX))
	dst.Set(uint16(result))
}

func (c *CPU) addIndex16(operand uint16) {
	a := c.indexReg()
	result := uint32(a) + uint32(operand)
	c.tick(7)
	c.putFlag(FlagC, result > 0xFFFF)
	c.putFlag(FlagH, (a&0xFFF)+(operand&0xFFF) > 0xFFF)
	c.clearFlag(FlagN)
	c.F = c.F&^(FlagY|FlagX) | (uint8(result>>8) & (FlagY | FlagX))
	c.setIndexReg(uint16(result))
}

// adcHL/sbcHL are ADD HL's full-flag-setting ED-prefixed siblings.
func (c *CPU) adcHL(operand uint16) {
	a := c.HL.Get()
	carry := uint32(0)
	if c.flagSet(FlagC) {
		carry = 1
	}
	result := uint32(a) + uint32(operand) + carry
	c.tick(7)
	c.putFlag(FlagC, result > 0xFFFF)
	c.putFlag(FlagH, (a&0xFFF)+(operand&0xFFF)+uint16(carry) > 0xFFF)
	c.putFlag(FlagV, (a^operand)&0x8000 == 0 && (a^uint16(result))&0x8000 != 0)
	c.clearFlag(FlagN)
	c.HL.Set(uint16(result))
	c.setSZYX(uint8(result >> 8))
	c.putFlag(FlagZ, uint16(result) == 0)
}

func (c *CPU) sbcHL(operand uint16) {
	a := c.HL.Get()
	borrow := uint16(0)
	if c.flagSet(FlagC) {
		borrow = 1
	}
	result := int32(a) - int32(operand) - int32(borrow)
	c.tick(7)
	c.putFlag(FlagC, result < 0)
	c.putFlag(FlagH, int32(a&0xFFF)-int32(operand&0xFFF)-int32(borrow) < 0)
	c.putFlag(FlagV, (a^operand)&0x8000 != 0 && (a^uint16(result))&0x8000 != 0)
	c.setFlag(FlagN)
	c.HL.Set(uint16(result))
	c.setSZYX(uint8(uint16(result) >> 8))
	c.putFlag(FlagZ, uint16(result) == 0)
}

// daa implements the BCD-correction algorithm exactly as documented
// for the Z80 (distinct from the Gameboy's simplified variant).
func (c *CPU) daa() {
	a := c.A
	adjust := uint8(0)
	carry := c.flagSet(FlagC)

	if c.flagSet(FlagH) || a&0x0F > 9 {
		adjust |= 0x06
	}
	if carry || a > 0x99 {
		adjust |= 0x60
		carry = true
	}

	var result uint8
	if c.flagSet(FlagN) {
		result = a - adjust
		c.putFlag(FlagH, c.flagSet(FlagH) && a&0x0F < 6)
	} else {
		result = a + adjust
		c.putFlag(FlagH, a&0x0F > 9)
	}

	c.A = result
	c.putFlag(FlagC, carry)
	c.setSZYXP(c.A)
}
