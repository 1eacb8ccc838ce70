// Package bus implements the Spectrum 48K's unified 64KiB address
// space (16KiB ROM + 48KiB RAM) and its single decoded I/O port. It
// reports which addresses are contended (IsContended); the delay
// itself is computed by ula.ContentionDelay.
package bus

import (
	"github.com/speccygo/zx48/internal/types"
	"github.com/speccygo/zx48/internal/zxerr"
)

const (
	RomSize    = 16384
	RamSize    = 49152
	RomEnd     = RomSize // exclusive
	ContendedStart = 0x4000
	ContendedEnd   = 0x8000 // exclusive
)

// PortDevice is any component that answers the Spectrum's single
// decoded I/O port (0xFE and its mirrors). The ULA is the only
// implementation; it is passed in on every call rather than stored,
// so Bus holds no back-reference to it.
type PortDevice interface {
	ReadPort(port uint16) uint8
	WritePort(port uint16, val uint8)
}

// Bus is the Spectrum's memory and I/O space.
type Bus struct {
	rom [RomSize]uint8
	ram [RamSize]uint8
}

// New returns a Bus with no ROM loaded and zeroed RAM.
func New() *Bus {
	return &Bus{}
}

// LoadROM installs a 16,384-byte ROM image. The ROM is immutable
// after this call; CPU writes below 0x4000 are always ignored.
func (b *Bus) LoadROM(image []byte) error {
	if len(image) != RomSize {
		return zxerr.LoadError{Reason: "ROM must be exactly 16384 bytes"}
	}
	copy(b.rom[:], image)
	return nil
}

// LoadRAM restores a full 49,152-byte RAM image, as used by snapshot
// loading.
func (b *Bus) LoadRAM(image []byte) error {
	if len(image) != RamSize {
		return zxerr.LoadError{Reason: "RAM must be exactly 49152 bytes"}
	}
	copy(b.ram[:], image)
	return nil
}

// RAM returns the live 48K RAM backing slice, for a renderer or
// snapshot writer to read (spec.md §6's "Bus RAM pointer").
func (b *Bus) RAM() []byte { return b.ram[:] }

// ROM returns the live 16K ROM backing slice.
func (b *Bus) ROM() []byte { return b.rom[:] }

// Read8 reads one byte. Addresses below 0x4000 come from ROM; the rest
// come from RAM.
func (b *Bus) Read8(addr uint16) uint8 {
	if addr < ContendedStart {
		return b.rom[addr]
	}
	return b.ram[addr-ContendedStart]
}

// Write8 writes one byte to RAM; writes below 0x4000 are silently
// ignored since that range is ROM.
func (b *Bus) Write8(addr uint16, val uint8) {
	if addr < ContendedStart {
		return
	}
	b.ram[addr-ContendedStart] = val
}

// Read16 reads a little-endian word, each byte wrapping modulo 2^16
// independently.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// Write16 writes a little-endian word, low byte first.
func (b *Bus) Write16(addr uint16, val uint16) {
	b.Write8(addr, uint8(val))
	b.Write8(addr+1, uint8(val>>8))
}

// PortIn reads the given port. Ports with bit 0 clear are decoded by
// the ULA; all others return the ULA's floating-bus value.
func (b *Bus) PortIn(port uint16, dev PortDevice) uint8 {
	return dev.ReadPort(port)
}

// PortOut writes the given port, dispatching to the ULA exactly as
// PortIn does.
func (b *Bus) PortOut(port uint16, val uint8, dev PortDevice) {
	dev.WritePort(port, val)
}

// IsContended reports whether addr falls in the 0x4000-0x7FFF window
// the ULA can contend.
func IsContended(addr uint16) bool {
	return addr >= ContendedStart && addr < ContendedEnd
}

var _ types.Stater = (*Bus)(nil)

// Load restores RAM (ROM is never part of a snapshot).
func (b *Bus) Load(s *types.State) {
	s.ReadData(b.ram[:])
}

// Save writes RAM to a snapshot buffer.
func (b *Bus) Save(s *types.State) {
	s.WriteData(b.ram[:])
}
