package cpu

// condTrue evaluates one of the eight standard condition codes, in
// the fixed order the opcode map encodes them: NZ,Z,NC,C,PO,PE,P,M.
func (c *CPU) condTrue(cc uint8) bool {
	switch cc {
	case 0:
		return !c.flagSet(FlagZ)
	case 1:
		return c.flagSet(FlagZ)
	case 2:
		return !c.flagSet(FlagC)
	case 3:
		return c.flagSet(FlagC)
	case 4:
		return !c.flagSet(FlagP)
	case 5:
		return c.flagSet(FlagP)
	case 6:
		return !c.flagSet(FlagS)
	default:
		return c.flagSet(FlagS)
	}
}

var condNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

func init() {
	defineBase(0xC3, "JP nn", func(c *CPU) { c.PC = c.fetchWord() })
	defineBase(0xE9, "JP (HL)", func(c *CPU) { c.PC = c.HL.Get() })
	defineIndexed(0xE9, "JP (IX)", func(c *CPU) { c.PC = c.indexReg() })

	for cc := uint8(0); cc < 8; cc++ {
		condition := cc
		opcode := 0xC2 | cc<<3
		defineBase(opcode, "JP "+condNames[condition]+",nn", func(c *CPU) {
			target := c.fetchWord()
			if c.condTrue(condition) {
				c.PC = target
			}
		})
	}

	defineBase(0x18, "JR e", func(c *CPU) {
		offset := int8(c.fetchByte())
		c.tick(5)
		c.PC = uint16(int32(c.PC) + int32(offset))
	})
	defineBase(0x10, "DJNZ e", func(c *CPU) {
		offset := int8(c.fetchByte())
		c.tick(1)
		c.B--
		if c.B != 0 {
			c.tick(5)
			c.PC = uint16(int32(c.PC) + int32(offset))
		}
	})
	// JR cc,e only implements NZ,Z,NC,C (indices 0-3); the opcode map
	// has no encoding for the other four conditions.
	for cc := uint8(0); cc < 4; cc++ {
		condition := cc
		opcode := 0x20 | cc<<3
		defineBase(opcode, "JR "+condNames[condition]+",e", func(c *CPU) {
			offset := int8(c.fetchByte())
			if c.condTrue(condition) {
				c.tick(5)
				c.PC = uint16(int32(c.PC) + int32(offset))
			}
		})
	}

	defineBase(0xCD, "CALL nn", func(c *CPU) {
		target := c.fetchWord()
		c.tick(1)
		c.push16(c.PC)
		c.PC = target
	})
	for cc := uint8(0); cc < 8; cc++ {
		condition := cc
		opcode := 0xC4 | cc<<3
		defineBase(opcode, "CALL "+condNames[condition]+",nn", func(c *CPU) {
			target := c.fetchWord()
			if c.condTrue(condition) {
				c.tick(1)
				c.push16(c.PC)
				c.PC = target
			}
		})
	}

	defineBase(0xC9, "RET", func(c *CPU) { c.PC = c.pop16() })
	for cc := uint8(0); cc < 8; cc++ {
		condition := cc
		opcode := 0xC0 | cc<<3
		defineBase(opcode, "RET "+condNames[condition], func(c *CPU) {
			c.tick(1)
			if c.condTrue(condition) {
				c.PC = c.pop16()
			}
		})
	}
	retnFn := func(c *CPU) { c.IFF1 = c.IFF2; c.PC = c.pop16() }
	// Same incomplete-decoding story as NEG: every unused ED slot in
	// this column answers as RETN/RETI.
	for _, op := range []uint8{0x45, 0x55, 0x65, 0x75} {
		defineED(op, "RETN", retnFn)
	}
	for _, op := range []uint8{0x4D, 0x5D, 0x6D, 0x7D} {
		defineED(op, "RETI", retnFn)
	}

	for n := uint8(0); n < 8; n++ {
		vector := n * 8
		opcode := 0xC7 | n<<3
		defineBase(opcode, "RST", func(c *CPU) {
			c.tick(1)
			c.push16(c.PC)
			c.PC = uint16(vector)
		})
	}
}
