package bus

import (
	"testing"

	"github.com/speccygo/zx48/internal/types"
)

func romOf(fill uint8) []byte {
	rom := make([]byte, RomSize)
	for i := range rom {
		rom[i] = fill
	}
	return rom
}

func TestWritesBelowRomBoundaryAreNoOps(t *testing.T) {
	b := New()
	if err := b.LoadROM(romOf(0xAA)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	b.Write8(0x1234, 0x42)
	if got := b.Read8(0x1234); got != 0xAA {
		t.Fatalf("write below 0x4000 should be ignored, Read8(0x1234) = %#02x, want the ROM byte 0xAA", got)
	}
}

func TestReadWriteRoundTripsInRAM(t *testing.T) {
	b := New()
	if err := b.LoadROM(romOf(0)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	b.Write8(0x5000, 0x77)
	if got := b.Read8(0x5000); got != 0x77 {
		t.Fatalf("Read8(0x5000) = %#02x, want 77", got)
	}

	b.Write16(0x8000, 0xBEEF)
	if got := b.Read16(0x8000); got != 0xBEEF {
		t.Fatalf("Read16(0x8000) = %#04x, want BEEF", got)
	}
}

func TestLoadROMRejectsWrongSize(t *testing.T) {
	b := New()
	if err := b.LoadROM(make([]byte, RomSize-1)); err == nil {
		t.Fatalf("expected an error loading a short ROM image")
	}
}

func TestLoadRAMRejectsWrongSize(t *testing.T) {
	b := New()
	if err := b.LoadRAM(make([]byte, RamSize+1)); err == nil {
		t.Fatalf("expected an error loading an oversized RAM image")
	}
}

func TestIsContendedCoversOnlyTheSecondBank(t *testing.T) {
	cases := []struct {
		addr uint16
		want bool
	}{
		{0x3FFF, false},
		{0x4000, true},
		{0x7FFF, true},
		{0x8000, false},
		{0xFFFF, false},
	}
	for _, c := range cases {
		if got := IsContended(c.addr); got != c.want {
			t.Fatalf("IsContended(%#04x) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestRAMSaveLoadRoundTrip(t *testing.T) {
	a := New()
	if err := a.LoadROM(romOf(0)); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	a.Write8(0x4001, 0x11)
	a.Write8(0x7FFF, 0x22)

	s := types.NewState()
	a.Save(s)

	b := New()
	b.Load(types.StateFromBytes(s.Bytes()))

	if got := b.Read8(0x4001); got != 0x11 {
		t.Fatalf("Read8(0x4001) after restore = %#02x, want 11", got)
	}
	if got := b.Read8(0x7FFF); got != 0x22 {
		t.Fatalf("Read8(0x7FFF) after restore = %#02x, want 22", got)
	}
}
