package cpu

import "testing"

func TestSZ53TableZeroSetsZeroFlag(t *testing.T) {
	if sz53Table[0]&FlagZ == 0 {
		t.Fatalf("sz53Table[0] should carry FlagZ")
	}
	if sz53Table[1]&FlagZ != 0 {
		t.Fatalf("sz53Table[1] should not carry FlagZ")
	}
}

func TestParityTableEvenParity(t *testing.T) {
	// 0x03 = 00000011, two set bits: even parity.
	if parityTable[0x03] != FlagP {
		t.Fatalf("0x03 should have even parity set")
	}
	// 0x01 = one set bit: odd parity.
	if parityTable[0x01] != 0 {
		t.Fatalf("0x01 should have odd parity (flag clear)")
	}
}

func TestOverflowAdd(t *testing.T) {
	// 0x7F + 0x01 = 0x80: positive + positive = negative, overflow.
	if !overflowAdd(0x7F, 0x01, 0x80) {
		t.Fatalf("expected signed overflow on 0x7F+0x01")
	}
	if overflowAdd(0x01, 0x01, 0x02) {
		t.Fatalf("did not expect overflow on 0x01+0x01")
	}
}

func TestOverflowSub(t *testing.T) {
	// 0x80 - 0x01 = 0x7F: negative - positive = positive, overflow.
	if !overflowSub(0x80, 0x01, 0x7F) {
		t.Fatalf("expected signed overflow on 0x80-0x01")
	}
}

func TestHalfCarryAdd8(t *testing.T) {
	if !halfCarryAdd8(0x0F, 0x01, 0) {
		t.Fatalf("0x0F+0x01 should half-carry")
	}
	if halfCarryAdd8(0x0E, 0x01, 0) {
		t.Fatalf("0x0E+0x01 should not half-carry")
	}
}

func TestHalfCarrySub8(t *testing.T) {
	if !halfCarrySub8(0x10, 0x01, 0) {
		t.Fatalf("0x10-0x01 should half-borrow")
	}
	if halfCarrySub8(0x11, 0x01, 0) {
		t.Fatalf("0x11-0x01 should not half-borrow")
	}
}

func TestSetFlagClearFlagFlagSet(t *testing.T) {
	c := New()
	c.setFlag(FlagC)
	if !c.flagSet(FlagC) {
		t.Fatalf("FlagC should be set")
	}
	c.clearFlag(FlagC)
	if c.flagSet(FlagC) {
		t.Fatalf("FlagC should be clear")
	}
	c.putFlag(FlagZ, true)
	if !c.flagSet(FlagZ) {
		t.Fatalf("putFlag(true) should set FlagZ")
	}
	c.putFlag(FlagZ, false)
	if c.flagSet(FlagZ) {
		t.Fatalf("putFlag(false) should clear FlagZ")
	}
}
