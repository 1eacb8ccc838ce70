package cpu

func init() {
	defineBase(0xDB, "IN A,(n)", func(c *CPU) {
		port := uint16(c.A)<<8 | uint16(c.fetchByte())
		c.A = c.portIn(port)
	})
	defineBase(0xD3, "OUT (n),A", func(c *CPU) {
		port := uint16(c.A)<<8 | uint16(c.fetchByte())
		c.portOut(port, c.A)
	})

	for reg := uint8(0); reg < 8; reg++ {
		r := reg
		opcode := 0x40 | r<<3
		defineED(opcode, "IN r,(C)", func(c *CPU) {
			v := c.portIn(c.BC.Get())
			if r != 6 {
				c.setR8(r, v)
			}
			c.setSZYXP(v)
			c.clearFlag(FlagH | FlagN)
		})
		opcodeOut := 0x41 | r<<3
		defineED(opcodeOut, "OUT (C),r", func(c *CPU) {
			var v uint8
			if r == 6 {
				v = 0
			} else {
				v = c.getR8(r)
			}
			c.portOut(c.BC.Get(), v)
		})
	}
}
