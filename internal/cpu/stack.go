package cpu

func init() {
	defineBase(0xC5, "PUSH BC", func(c *CPU) { c.tick(1); c.push16(c.BC.Get()) })
	defineBase(0xD5, "PUSH DE", func(c *CPU) { c.tick(1); c.push16(c.DE.Get()) })
	defineBase(0xE5, "PUSH HL", func(c *CPU) { c.tick(1); c.push16(c.HL.Get()) })
	defineBase(0xF5, "PUSH AF", func(c *CPU) { c.tick(1); c.push16(c.AF.Get()) })
	defineIndexed(0xE5, "PUSH IX", func(c *CPU) { c.tick(1); c.push16(c.indexReg()) })

	defineBase(0xC1, "POP BC", func(c *CPU) { c.BC.Set(c.pop16()) })
	defineBase(0xD1, "POP DE", func(c *CPU) { c.DE.Set(c.pop16()) })
	defineBase(0xE1, "POP HL", func(c *CPU) { c.HL.Set(c.pop16()) })
	defineBase(0xF1, "POP AF", func(c *CPU) { c.AF.Set(c.pop16()) })
	defineIndexed(0xE1, "POP IX", func(c *CPU) { c.setIndexReg(c.pop16()) })

	defineBase(0xEB, "EX DE,HL", func(c *CPU) {
		c.D, c.H = c.H, c.D
		c.E, c.L = c.L, c.E
	})
	defineBase(0x08, "EX AF,AF'", func(c *CPU) { c.exchangeAFShadow() })
	defineBase(0xD9, "EXX", func(c *CPU) { c.exx() })

	defineBase(0xE3, "EX (SP),HL", func(c *CPU) {
		lo := c.readByte(c.SP)
		hi := c.readByte(c.SP + 1)
		old := c.HL.Get()
		c.writeByte(c.SP, uint8(old))
		c.writeByte(c.SP+1, uint8(old>>8))
		c.tick(3)
		c.HL.Set(uint16(hi)<<8 | uint16(lo))
	})
	defineIndexed(0xE3, "EX (SP),IX", func(c *CPU) {
		lo := c.readByte(c.SP)
		hi := c.readByte(c.SP + 1)
		old := c.indexReg()
		c.writeByte(c.SP, uint8(old))
		c.writeByte(c.SP+1, uint8(old>>8))
		c.tick(3)
		c.setIndexReg(uint16(hi)<<8 | uint16(lo))
	})
}
