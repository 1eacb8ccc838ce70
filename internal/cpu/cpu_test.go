package cpu

import (
	"testing"

	"github.com/speccygo/zx48/internal/bus"
	"github.com/speccygo/zx48/internal/tape"
	"github.com/speccygo/zx48/internal/ula"
)

// harness bundles the three dependencies Step needs per call, and
// loads a little program at a RAM address so tests don't need a ROM.
type harness struct {
	cpu  *CPU
	bus  *bus.Bus
	ula  *ula.ULA
	tape *tape.Player
}

func newHarness(program []byte, origin uint16) *harness {
	b := bus.New()
	rom := make([]byte, bus.RomSize)
	if err := b.LoadROM(rom); err != nil {
		panic(err)
	}
	for i, v := range program {
		b.Write8(origin+uint16(i), v)
	}
	c := New()
	c.PC = origin
	return &harness{cpu: c, bus: b, ula: ula.New(nil), tape: tape.New()}
}

func (h *harness) step() uint8 {
	return h.cpu.Step(h.bus, h.ula, h.tape)
}

func TestLoadImmediateAndAdd(t *testing.T) {
	// LD A,5 ; LD B,10 ; ADD A,B
	h := newHarness([]byte{0x3E, 0x05, 0x06, 0x0A, 0x80}, 0x8000)
	h.step()
	h.step()
	h.step()
	if h.cpu.A != 15 {
		t.Fatalf("A = %d, want 15", h.cpu.A)
	}
}

func TestIncDecFlagsOnRegister(t *testing.T) {
	// LD A,0xFF ; INC A  -> wraps to 0, sets Z and H
	h := newHarness([]byte{0x3E, 0xFF, 0x3C}, 0x8000)
	h.step()
	h.step()
	if h.cpu.A != 0 {
		t.Fatalf("A = %d, want 0", h.cpu.A)
	}
	if !h.cpu.flagSet(FlagZ) {
		t.Fatalf("expected FlagZ set after wraparound increment")
	}
}

func TestJumpRelative(t *testing.T) {
	// JR +2 ; NOP ; NOP ; LD A,1  (jump skips the two NOPs)
	h := newHarness([]byte{0x18, 0x02, 0x00, 0x00, 0x3E, 0x01}, 0x8000)
	h.step() // JR
	if h.cpu.PC != 0x8004 {
		t.Fatalf("PC after JR = %04x, want 8004", h.cpu.PC)
	}
	h.step() // LD A,1
	if h.cpu.A != 1 {
		t.Fatalf("A = %d, want 1", h.cpu.A)
	}
}

func TestCallAndReturn(t *testing.T) {
	// at 0x8000: CALL 0x8010 ; HALT
	// at 0x8010: LD A,0x42 ; RET
	h := newHarness([]byte{0xCD, 0x10, 0x80, 0x76}, 0x8000)
	h.bus.Write8(0x8010, 0x3E)
	h.bus.Write8(0x8011, 0x42)
	h.bus.Write8(0x8012, 0xC9)
	h.cpu.SP = 0xFFF0

	h.step() // CALL
	if h.cpu.PC != 0x8010 {
		t.Fatalf("PC after CALL = %04x, want 8010", h.cpu.PC)
	}
	h.step() // LD A,0x42
	h.step() // RET
	if h.cpu.PC != 0x8003 {
		t.Fatalf("PC after RET = %04x, want 8003 (back past the CALL)", h.cpu.PC)
	}
	if h.cpu.A != 0x42 {
		t.Fatalf("A = %02x, want 42", h.cpu.A)
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	// LD BC,0x1234 ; PUSH BC ; LD BC,0 ; POP BC
	h := newHarness([]byte{0x01, 0x34, 0x12, 0xC5, 0x01, 0x00, 0x00, 0xC1}, 0x8000)
	h.cpu.SP = 0xFFF0
	h.step() // LD BC,1234
	h.step() // PUSH BC
	h.step() // LD BC,0
	if h.cpu.BC.Get() != 0 {
		t.Fatalf("BC should be cleared before POP, got %04x", h.cpu.BC.Get())
	}
	h.step() // POP BC
	if h.cpu.BC.Get() != 0x1234 {
		t.Fatalf("BC after POP = %04x, want 1234", h.cpu.BC.Get())
	}
}

func TestDAAAfterBCDAddition(t *testing.T) {
	// LD A,0x09 ; LD B,0x01 ; ADD A,B ; DAA  => 0x09+0x01=0x0A, DAA -> 0x10
	h := newHarness([]byte{0x3E, 0x09, 0x06, 0x01, 0x80, 0x27}, 0x8000)
	h.step()
	h.step()
	h.step()
	h.step()
	if h.cpu.A != 0x10 {
		t.Fatalf("A after DAA = %02x, want 10", h.cpu.A)
	}
}

func TestHaltWaitsForInterrupt(t *testing.T) {
	h := newHarness([]byte{0x76}, 0x8000) // HALT
	h.step()
	if !h.cpu.Halted {
		t.Fatalf("expected Halted after executing HALT")
	}
	pcBefore := h.cpu.PC
	h.step()
	if h.cpu.PC != pcBefore {
		t.Fatalf("PC should not move while halted with no pending interrupt")
	}
}

func TestIndexedLoadThroughIX(t *testing.T) {
	// LD IX,0x9000 ; LD (IX+2),0x55 ; LD A,(IX+2)
	h := newHarness([]byte{0xDD, 0x21, 0x00, 0x90, 0xDD, 0x36, 0x02, 0x55, 0xDD, 0x7E, 0x02}, 0x8000)
	h.step()
	h.step()
	h.step()
	if h.cpu.A != 0x55 {
		t.Fatalf("A = %02x, want 55 via (IX+2)", h.cpu.A)
	}
}

func TestBitCBOperations(t *testing.T) {
	// LD A,0x80 ; CB 7F = BIT 7,A (Z should clear since bit 7 is set)
	h := newHarness([]byte{0x3E, 0x80, 0xCB, 0x7F}, 0x8000)
	h.step()
	h.step()
	if h.cpu.flagSet(FlagZ) {
		t.Fatalf("BIT 7,A with A=0x80 should clear Z")
	}
}

func TestIndexedBitTestsEveryDDCBSubfield(t *testing.T) {
	// LD IX,0x9000 ; LD (IX+0),0x01 ; DD CB 00 41 = BIT 0,(IX+0) via the
	// C sub-field, which used to be left unregistered.
	h := newHarness([]byte{0xDD, 0x21, 0x00, 0x90, 0xDD, 0x36, 0x00, 0x01, 0xDD, 0xCB, 0x00, 0x41}, 0x8000)
	h.step() // LD IX,0x9000
	h.step() // LD (IX+0),0x01
	h.step() // BIT 0,(IX+0)
	if h.cpu.flagSet(FlagZ) {
		t.Fatalf("BIT 0,(IX+0) with bit 0 set should clear Z")
	}
}

func TestExSPHLTakes19Tstates(t *testing.T) {
	h := newHarness([]byte{0xE3}, 0x8000) // EX (SP),HL
	h.cpu.SP = 0x9000
	if got := h.step(); got != 19 {
		t.Fatalf("EX (SP),HL took %d T-states, want 19", got)
	}
}

func TestExSPIXTakes23Tstates(t *testing.T) {
	h := newHarness([]byte{0xDD, 0xE3}, 0x8000) // EX (SP),IX
	h.cpu.SP = 0x9000
	if got := h.step(); got != 23 {
		t.Fatalf("EX (SP),IX took %d T-states, want 23", got)
	}
}

func TestINITakes16TstatesAndINIRTakes21OnRepeat(t *testing.T) {
	// ED A2 = INI; B is decremented first, so B=1 makes it the final
	// iteration (no extra repeat cycles).
	h := newHarness([]byte{0xED, 0xA2}, 0x8000)
	h.cpu.B = 1
	h.cpu.HL.Set(0x9000)
	if got := h.step(); got != 16 {
		t.Fatalf("INI took %d T-states, want 16", got)
	}

	// ED B2 = INIR with B=2, so it repeats once: 16 + 5 extra = 21.
	h2 := newHarness([]byte{0xED, 0xB2}, 0x8000)
	h2.cpu.B = 2
	h2.cpu.HL.Set(0x9000)
	if got := h2.step(); got != 21 {
		t.Fatalf("INIR on repeat took %d T-states, want 21", got)
	}
}

func TestEIDelaysInterruptAcceptByOneInstruction(t *testing.T) {
	h := newHarness([]byte{0xFB, 0x00}, 0x8000) // EI ; NOP
	h.cpu.SP = 0xFFF0
	h.ula.IntPending = true

	h.step() // EI: IFF1 becomes true, but the pending interrupt must wait
	if h.cpu.PC != 0x8001 {
		t.Fatalf("PC after EI = %04x, want 8001 (interrupt must not land between EI and the next instruction)", h.cpu.PC)
	}
	if !h.ula.IntPending {
		t.Fatalf("interrupt should still be pending right after EI's own step")
	}

	h.step() // NOP: the one instruction EI must let run before interrupts resume
	if h.cpu.PC != 0x0038 {
		t.Fatalf("PC after NOP = %04x, want 0038 (interrupt should now be accepted)", h.cpu.PC)
	}
	if h.ula.IntPending {
		t.Fatalf("interrupt should have been accepted and cleared by now")
	}
}

func TestContentionDelayAdvancesULAInLockstep(t *testing.T) {
	// LD HL,0x4000 ; LD A,(HL)
	h := newHarness([]byte{0x21, 0x00, 0x40, 0x7E}, 0x8000)
	h.bus.Write8(0x4000, 0x99)
	h.step() // LD HL,0x4000

	h.ula.Scanline = 64
	h.ula.ScanlineTick = 0
	tBefore := h.cpu.Tstates
	frameBefore := uint32(h.ula.Scanline)*ula.TStatesPerLine + uint32(h.ula.ScanlineTick)

	h.step() // LD A,(HL): reads contended memory, so a delay should be charged

	elapsed := h.cpu.Tstates - tBefore
	frameAfter := uint32(h.ula.Scanline)*ula.TStatesPerLine + uint32(h.ula.ScanlineTick)
	if frameAfter-frameBefore != uint32(elapsed) {
		t.Fatalf("ULA advanced by %d T-states but CPU charged %d; contention delay must reach ula.Tick too", frameAfter-frameBefore, elapsed)
	}
	if elapsed <= 7 {
		t.Fatalf("elapsed = %d, want more than the uncontended 4+3=7 base cycles", elapsed)
	}
}

func TestLDIRCopiesBlockAndDecrementsBC(t *testing.T) {
	h := newHarness([]byte{0x21, 0x00, 0x90, 0x11, 0x00, 0x91, 0x01, 0x03, 0x00, 0xED, 0xB0}, 0x8000)
	h.bus.Write8(0x9000, 0xAA)
	h.bus.Write8(0x9001, 0xBB)
	h.bus.Write8(0x9002, 0xCC)
	h.step() // LD HL
	h.step() // LD DE
	h.step() // LD BC,3
	// LDIR re-executes itself (PC backs up by 2) until BC reaches
	// zero, each repetition its own Step call so an interrupt could
	// land between them; drive it to completion here.
	for i := 0; i < 3; i++ {
		h.step()
	}
	if h.bus.Read8(0x9100) != 0xAA || h.bus.Read8(0x9101) != 0xBB || h.bus.Read8(0x9102) != 0xCC {
		t.Fatalf("LDIR did not copy the expected bytes")
	}
	if h.cpu.BC.Get() != 0 {
		t.Fatalf("BC after LDIR = %04x, want 0", h.cpu.BC.Get())
	}
}
