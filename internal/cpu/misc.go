package cpu

func init() {
	defineBase(0x00, "NOP", func(c *CPU) {})
	defineBase(0x76, "HALT", func(c *CPU) { c.Halted = true })
	defineBase(0xF3, "DI", func(c *CPU) { c.IFF1, c.IFF2 = false, false })
	defineBase(0xFB, "EI", func(c *CPU) {
		c.IFF1, c.IFF2 = true, true
		c.EIPending = true
	})

	defineED(0x46, "IM 0", func(c *CPU) { c.IM = IM0 })
	defineED(0x4E, "IM 0", func(c *CPU) { c.IM = IM0 })
	defineED(0x56, "IM 1", func(c *CPU) { c.IM = IM1 })
	defineED(0x5E, "IM 2", func(c *CPU) { c.IM = IM2 })
	defineED(0x66, "IM 0", func(c *CPU) { c.IM = IM0 })
	defineED(0x6E, "IM 0", func(c *CPU) { c.IM = IM0 })
	defineED(0x76, "IM 1", func(c *CPU) { c.IM = IM1 })
	defineED(0x7E, "IM 2", func(c *CPU) { c.IM = IM2 })

	defineED(0x6F, "RLD", func(c *CPU) {
		addr := c.HL.Get()
		m := c.readByte(addr)
		c.tick(4)
		mHi, mLo := m>>4, m&0x0F
		aLo := c.A & 0x0F
		newM := mLo<<4 | aLo
		c.A = c.A&0xF0 | mHi
		c.writeByte(addr, newM)
		c.setSZYXP(c.A)
		c.clearFlag(FlagH | FlagN)
	})
	defineED(0x67, "RRD", func(c *CPU) {
		addr := c.HL.Get()
		m := c.readByte(addr)
		c.tick(4)
		mHi, mLo := m>>4, m&0x0F
		aLo := c.A & 0x0F
		newM := aLo<<4 | mHi
		c.A = c.A&0xF0 | mLo
		c.writeByte(addr, newM)
		c.setSZYXP(c.A)
		c.clearFlag(FlagH | FlagN)
	})
}
