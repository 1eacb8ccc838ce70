package cpu

// getR8/setR8 decode the standard 3-bit register field used across the
// base opcode map: 0-5 are B,C,D,E,H,L, 6 is (HL), 7 is A. Reading or
// writing index 6 naturally charges the memory-access timing through
// readByte/writeByte, so callers never special-case it.
func (c *CPU) getR8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.readByte(c.HL.Get())
	default:
		return c.A
	}
}

func (c *CPU) setR8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		c.writeByte(c.HL.Get(), v)
	default:
		c.A = v
	}
}

// getR8Indexed/setR8Indexed are getR8/setR8's DD/FD counterparts: index
// 4/5 name IXH/IXL or IYH/IYL (or IYH/IYL), and 6 names the indexed
// memory address rather than (HL).
func (c *CPU) getR8Indexed(idx uint8, addr uint16) uint8 {
	switch idx {
	case 4:
		return c.indexHi()
	case 5:
		return c.indexLo()
	case 6:
		return c.readByte(addr)
	default:
		return c.getR8(idx)
	}
}

func (c *CPU) setR8Indexed(idx uint8, addr uint16, v uint8) {
	switch idx {
	case 4:
		c.setIndexHi(v)
	case 5:
		c.setIndexLo(v)
	case 6:
		c.writeByte(addr, v)
	default:
		c.setR8(idx, v)
	}
}

var r8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func init() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue // 0x76 is HALT
			}
			opcode := 0x40 | dst<<3 | src
			d, s := dst, src
			defineBase(opcode, "LD "+r8Names[d]+","+r8Names[s], func(c *CPU) {
				c.setR8(d, c.getR8(s))
			})
		}
	}

	for dst := uint8(0); dst < 8; dst++ {
		if dst == 6 {
			continue // 0x36 is LD (HL),n, defined below
		}
		opcode := 0x06 | dst<<3
		d := dst
		defineBase(opcode, "LD "+r8Names[d]+",n", func(c *CPU) {
			c.setR8(d, c.fetchByte())
		})
	}
	defineBase(0x36, "LD (HL),n", func(c *CPU) {
		v := c.fetchByte()
		c.writeByte(c.HL.Get(), v)
	})

	// DD/FD-prefixed LD r,(IX+d) / LD (IX+d),r and LD IXH/IXL,n.
	for dst := uint8(0); dst < 8; dst++ {
		if dst == 6 {
			continue
		}
		for src := uint8(0); src < 8; src++ {
			if src == 6 {
				continue
			}
			opcode := 0x40 | dst<<3 | src
			d, s := dst, src
			defineIndexed(opcode, "LD r,r' (IX/IY)", func(c *CPU) {
				c.setR8Indexed(d, 0, c.getR8Indexed(s, 0))
			})
		}
		d := dst
		opcode := 0x46 | dst<<3
		defineIndexed(opcode, "LD r,(IX+d)", func(c *CPU) {
			addr := c.indexedAddr()
			c.setR8(d, c.readByte(addr))
		})
		opcode2 := 0x70 | dst
		s := dst
		defineIndexed(opcode2, "LD (IX+d),r", func(c *CPU) {
			addr := c.indexedAddr()
			c.writeByte(addr, c.getR8(s))
		})
	}
	defineIndexed(0x36, "LD (IX+d),n", func(c *CPU) {
		// The displacement and the immediate are fetched back to back,
		// so only two internal T-states remain before the write.
		disp := int8(c.fetchByte())
		v := c.fetchByte()
		c.tick(2)
		addr := uint16(int32(c.indexReg()) + int32(disp))
		c.writeByte(addr, v)
	})
	defineIndexed(0x26, "LD IXH,n", func(c *CPU) { c.setIndexHi(c.fetchByte()) })
	defineIndexed(0x2E, "LD IXL,n", func(c *CPU) { c.setIndexLo(c.fetchByte()) })

	defineBase(0x0A, "LD A,(BC)", func(c *CPU) { c.A = c.readByte(c.BC.Get()) })
	defineBase(0x1A, "LD A,(DE)", func(c *CPU) { c.A = c.readByte(c.DE.Get()) })
	defineBase(0x02, "LD (BC),A", func(c *CPU) { c.writeByte(c.BC.Get(), c.A) })
	defineBase(0x12, "LD (DE),A", func(c *CPU) { c.writeByte(c.DE.Get(), c.A) })
	defineBase(0x3A, "LD A,(nn)", func(c *CPU) { c.A = c.readByte(c.fetchWord()) })
	defineBase(0x32, "LD (nn),A", func(c *CPU) { c.writeByte(c.fetchWord(), c.A) })

	defineBase(0x01, "LD BC,nn", func(c *CPU) { c.BC.Set(c.fetchWord()) })
	defineBase(0x11, "LD DE,nn", func(c *CPU) { c.DE.Set(c.fetchWord()) })
	defineBase(0x21, "LD HL,nn", func(c *CPU) { c.HL.Set(c.fetchWord()) })
	defineBase(0x31, "LD SP,nn", func(c *CPU) { c.SP = c.fetchWord() })
	defineIndexed(0x21, "LD IX,nn", func(c *CPU) { c.setIndexReg(c.fetchWord()) })
	defineIndexed(0x31, "LD SP,nn", func(c *CPU) { c.SP = c.fetchWord() })

	defineBase(0x2A, "LD HL,(nn)", func(c *CPU) {
		addr := c.fetchWord()
		c.HL.Set(c.readWord(addr))
	})
	defineBase(0x22, "LD (nn),HL", func(c *CPU) {
		addr := c.fetchWord()
		c.writeWord(addr, c.HL.Get())
	})
	defineIndexed(0x2A, "LD IX,(nn)", func(c *CPU) {
		addr := c.fetchWord()
		c.setIndexReg(c.readWord(addr))
	})
	defineIndexed(0x22, "LD (nn),IX", func(c *CPU) {
		addr := c.fetchWord()
		c.writeWord(addr, c.indexReg())
	})

	defineBase(0xF9, "LD SP,HL", func(c *CPU) {
		c.tick(2)
		c.SP = c.HL.Get()
	})
	defineIndexed(0xF9, "LD SP,IX", func(c *CPU) {
		c.tick(2)
		c.SP = c.indexReg()
	})

	defineED(0x43, "LD (nn),BC", func(c *CPU) { c.writeWord(c.fetchWord(), c.BC.Get()) })
	defineED(0x53, "LD (nn),DE", func(c *CPU) { c.writeWord(c.fetchWord(), c.DE.Get()) })
	defineED(0x63, "LD (nn),HL", func(c *CPU) { c.writeWord(c.fetchWord(), c.HL.Get()) })
	defineED(0x73, "LD (nn),SP", func(c *CPU) { c.writeWord(c.fetchWord(), c.SP) })
	defineED(0x4B, "LD BC,(nn)", func(c *CPU) { c.BC.Set(c.readWord(c.fetchWord())) })
	defineED(0x5B, "LD DE,(nn)", func(c *CPU) { c.DE.Set(c.readWord(c.fetchWord())) })
	defineED(0x6B, "LD HL,(nn)", func(c *CPU) { c.HL.Set(c.readWord(c.fetchWord())) })
	defineED(0x7B, "LD SP,(nn)", func(c *CPU) { c.SP = c.readWord(c.fetchWord()) })

	defineED(0x47, "LD I,A", func(c *CPU) { c.tick(1); c.I = c.A })
	defineED(0x4F, "LD R,A", func(c *CPU) { c.tick(1); c.R = c.A })
	defineED(0x57, "LD A,I", func(c *CPU) {
		c.tick(1)
		c.A = c.I
		c.setSZYX(c.A)
		c.clearFlag(FlagH | FlagN)
		c.putFlag(FlagV, c.IFF2)
	})
	defineED(0x5F, "LD A,R", func(c *CPU) {
		c.tick(1)
		c.A = c.R
		c.setSZYX(c.A)
		c.clearFlag(FlagH | FlagN)
		c.putFlag(FlagV, c.IFF2)
	})
}
