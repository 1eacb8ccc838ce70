package cpu

// Instruction is one decoded opcode: a name for tracing/debugging and
// the function that carries out its effect. Timing is charged by the
// function itself via CPU.tick/readByte/writeByte, not listed here,
// since contended-memory delays make a fixed per-opcode cycle count
// insufficient on its own.
type Instruction struct {
	Name string
	Fn   func(c *CPU)
}

// The six fixed-size dispatch tables covering every prefix form the
// Z80 supports. DD/FD-prefixed CB instructions are decoded specially
// (decode.go) since their displacement byte precedes the opcode byte,
// unlike every other prefixed form.
// indexedCBInstruction mirrors Instruction but carries the already-
// computed (IX+d)/(IY+d) address, since every DD/FD CB opcode operates
// on that one address regardless of which register field it names.
type indexedCBInstruction struct {
	Name string
	Fn   func(c *CPU, addr uint16)
}

var (
	baseTable [256]Instruction
	cbTable   [256]Instruction
	edTable   [256]Instruction
	ddTable   [256]Instruction
	fdTable   [256]Instruction
	ddcbTable [256]indexedCBInstruction
	fdcbTable [256]indexedCBInstruction
)

func defineBase(opcode uint8, name string, fn func(c *CPU)) {
	baseTable[opcode] = Instruction{Name: name, Fn: fn}
}

func defineCB(opcode uint8, name string, fn func(c *CPU)) {
	cbTable[opcode] = Instruction{Name: name, Fn: fn}
}

func defineED(opcode uint8, name string, fn func(c *CPU)) {
	edTable[opcode] = Instruction{Name: name, Fn: fn}
}

// defineIndexed installs the same function under both the DD and FD
// tables; the function itself reads c.indexReg()/c.setIndexReg() to
// stay register-agnostic (load.go, arithmetic.go, etc).
func defineIndexed(opcode uint8, name string, fn func(c *CPU)) {
	ddTable[opcode] = Instruction{Name: name, Fn: fn}
	fdTable[opcode] = Instruction{Name: "(IY) " + name, Fn: fn}
}

func defineIndexedCB(opcode uint8, name string, fn func(c *CPU, addr uint16)) {
	ddcbTable[opcode] = indexedCBInstruction{Name: name, Fn: fn}
	fdcbTable[opcode] = indexedCBInstruction{Name: name, Fn: fn}
}
