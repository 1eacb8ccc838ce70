package cpu

// execute dispatches a fetched opcode byte to the right table,
// unwrapping the CB/ED/DD/FD prefix forms.
func (c *CPU) execute(opcode uint8) {
	switch opcode {
	case 0xCB:
		op2 := c.fetchOpcode()
		instr := cbTable[op2]
		if instr.Fn != nil {
			instr.Fn(c)
		}
	case 0xED:
		op2 := c.fetchOpcode()
		instr := edTable[op2]
		if instr.Fn != nil {
			instr.Fn(c)
		}
		// Unassigned ED opcodes ("NONI") behave as a no-op that still
		// consumes the two fetch cycles already charged.
	case 0xDD:
		c.executeIndexed(false)
	case 0xFD:
		c.executeIndexed(true)
	default:
		instr := baseTable[opcode]
		if instr.Fn != nil {
			instr.Fn(c)
		}
	}
}

// executeIndexed runs a DD- or FD-prefixed instruction. Repeated DD/FD
// prefixes collapse to the last one seen, each still charging its own
// fetch cycle - the real chip's behaviour when code stacks prefixes.
func (c *CPU) executeIndexed(useIY bool) {
	c.useIY = useIY
	op2 := c.fetchOpcode()
	for op2 == 0xDD || op2 == 0xFD {
		c.useIY = op2 == 0xFD
		op2 = c.fetchOpcode()
	}

	if op2 == 0xCB {
		disp := int8(c.fetchByte())
		cbOp := c.fetchByte()
		c.tick(2) // address calculation after the sub-opcode byte
		addr := uint16(int32(c.indexReg()) + int32(disp))
		var instr indexedCBInstruction
		if c.useIY {
			instr = fdcbTable[cbOp]
		} else {
			instr = ddcbTable[cbOp]
		}
		if instr.Fn != nil {
			instr.Fn(c, addr)
		}
		return
	}

	var instr Instruction
	if c.useIY {
		instr = fdTable[op2]
	} else {
		instr = ddTable[op2]
	}
	if instr.Fn != nil {
		instr.Fn(c)
	} else if baseTable[op2].Fn != nil {
		// This opcode has no IX/IY-specific behaviour: DD/FD is
		// effectively ignored and the base form runs unmodified.
		baseTable[op2].Fn(c)
	}
}

// indexReg, setIndexReg and friends let load.go/arithmetic.go/etc
// write one implementation shared by both the DD and FD tables,
// keyed on which index register executeIndexed selected.
func (c *CPU) indexReg() uint16 {
	if c.useIY {
		return c.IY
	}
	return c.IX
}

func (c *CPU) setIndexReg(v uint16) {
	if c.useIY {
		c.IY = v
	} else {
		c.IX = v
	}
}

func (c *CPU) indexHi() uint8 {
	if c.useIY {
		return c.IYH()
	}
	return c.IXH()
}

func (c *CPU) indexLo() uint8 {
	if c.useIY {
		return c.IYL()
	}
	return c.IXL()
}

func (c *CPU) setIndexHi(v uint8) {
	if c.useIY {
		c.SetIYH(v)
	} else {
		c.SetIXH(v)
	}
}

func (c *CPU) setIndexLo(v uint8) {
	if c.useIY {
		c.SetIYL(v)
	} else {
		c.SetIXL(v)
	}
}

// indexedAddr reads the displacement byte that follows a DD/FD opcode
// and returns the effective (IX+d)/(IY+d) address, charging the five
// extra T-states the real chip spends computing it.
func (c *CPU) indexedAddr() uint16 {
	disp := int8(c.fetchByte())
	c.tick(5)
	return uint16(int32(c.indexReg()) + int32(disp))
}
