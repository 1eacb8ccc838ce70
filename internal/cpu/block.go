package cpu

// ldBlock holds the data movement and flag logic that LDI/LDD/LDIR/LDDR
// share; decrement selects the D forms, which move HL and DE downwards
// instead of upwards.
func (c *CPU) ldBlock(decrement bool) {
	v := c.readByte(c.HL.Get())
	c.writeByte(c.DE.Get(), v)
	c.tick(2)
	if decrement {
		c.HL.Dec()
		c.DE.Dec()
	} else {
		c.HL.Inc()
		c.DE.Inc()
	}
	c.BC.Dec()

	c.clearFlag(FlagH | FlagN)
	c.putFlag(FlagV, c.BC.Get() != 0)
	n := v + c.A
	c.F = c.F&^(FlagY|FlagX) | (n & FlagX) | ((n << 4) & FlagY)
}

func (c *CPU) cpBlock(decrement bool) {
	v := c.readByte(c.HL.Get())
	c.tick(5)
	if decrement {
		c.HL.Dec()
	} else {
		c.HL.Inc()
	}
	c.BC.Dec()

	result := c.A - v
	half := halfCarrySub8(c.A, v, 0)
	c.putFlag(FlagH, half)
	c.setFlag(FlagN)
	c.putFlag(FlagV, c.BC.Get() != 0)
	c.putFlag(FlagZ, result == 0)
	c.putFlag(FlagS, result&0x80 != 0)
	n := result
	if half {
		n--
	}
	c.F = c.F&^(FlagY|FlagX) | (n & FlagX) | ((n << 4) & FlagY)
}

func (c *CPU) inBlock(decrement bool) {
	v := c.portIn(c.BC.Get())
	c.writeByte(c.HL.Get(), v)
	c.tick(1)
	c.B--
	if decrement {
		c.HL.Dec()
	} else {
		c.HL.Inc()
	}
	c.putFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN)
}

func (c *CPU) outBlock(decrement bool) {
	v := c.readByte(c.HL.Get())
	c.B--
	c.portOut(c.BC.Get(), v)
	c.tick(1)
	if decrement {
		c.HL.Dec()
	} else {
		c.HL.Inc()
	}
	c.putFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN)
}

func init() {
	defineED(0xA0, "LDI", func(c *CPU) { c.ldBlock(false) })
	defineED(0xA8, "LDD", func(c *CPU) { c.ldBlock(true) })
	defineED(0xB0, "LDIR", func(c *CPU) {
		c.ldBlock(false)
		if c.BC.Get() != 0 {
			c.tick(5)
			c.PC -= 2
		}
	})
	defineED(0xB8, "LDDR", func(c *CPU) {
		c.ldBlock(true)
		if c.BC.Get() != 0 {
			c.tick(5)
			c.PC -= 2
		}
	})

	defineED(0xA1, "CPI", func(c *CPU) { c.cpBlock(false) })
	defineED(0xA9, "CPD", func(c *CPU) { c.cpBlock(true) })
	defineED(0xB1, "CPIR", func(c *CPU) {
		c.cpBlock(false)
		if c.BC.Get() != 0 && !c.flagSet(FlagZ) {
			c.tick(5)
			c.PC -= 2
		}
	})
	defineED(0xB9, "CPDR", func(c *CPU) {
		c.cpBlock(true)
		if c.BC.Get() != 0 && !c.flagSet(FlagZ) {
			c.tick(5)
			c.PC -= 2
		}
	})

	defineED(0xA2, "INI", func(c *CPU) { c.inBlock(false) })
	defineED(0xAA, "IND", func(c *CPU) { c.inBlock(true) })
	defineED(0xB2, "INIR", func(c *CPU) {
		c.inBlock(false)
		if c.B != 0 {
			c.tick(5)
			c.PC -= 2
		}
	})
	defineED(0xBA, "INDR", func(c *CPU) {
		c.inBlock(true)
		if c.B != 0 {
			c.tick(5)
			c.PC -= 2
		}
	})

	defineED(0xA3, "OUTI", func(c *CPU) { c.outBlock(false) })
	defineED(0xAB, "OUTD", func(c *CPU) { c.outBlock(true) })
	defineED(0xB3, "OTIR", func(c *CPU) {
		c.outBlock(false)
		if c.B != 0 {
			c.tick(5)
			c.PC -= 2
		}
	})
	defineED(0xBB, "OTDR", func(c *CPU) {
		c.outBlock(true)
		if c.B != 0 {
			c.tick(5)
			c.PC -= 2
		}
	})
}
