// Package ula implements the ZX Spectrum's ULA: border colour, the
// beeper (MIC/EAR output), the 8x5 keyboard matrix, the EAR input
// latch, and the scanline counter that raises one interrupt per frame.
package ula

import (
	"github.com/speccygo/zx48/internal/types"
	"github.com/speccygo/zx48/pkg/bits"
	"github.com/speccygo/zx48/pkg/log"
)

// Timing constants for a 48K Spectrum, in T-states.
const (
	ScanlinesPerFrame = 312
	TStatesPerLine    = 224
	TStatesPerFrame   = ScanlinesPerFrame * TStatesPerLine // 69,888

	FirstDisplayLine = 64
	LastDisplayLine  = 255
	ContendedLineEnd = 128
)

// contentionPattern is added, in T-states, to an access to contended
// memory at the given position within a scanline, during active display.
var contentionPattern = [8]uint8{6, 5, 4, 3, 2, 1, 0, 0}

// ContentionDelay returns the extra T-states charged to a CPU access of
// contended memory (0x4000-0x7FFF) at the given scanline/line-position,
// or 0 outside the contended window.
func ContentionDelay(scanline int, scanlineTstate int) uint8 {
	if scanline < FirstDisplayLine || scanline > LastDisplayLine {
		return 0
	}
	if scanlineTstate >= ContendedLineEnd {
		return 0
	}
	return contentionPattern[scanlineTstate&7]
}

// BorderChange records a single border-colour write, timestamped by its
// absolute position within the frame (scanline*224 + scanlineTstate).
type BorderChange struct {
	FrameTstate uint32
	Colour      uint8
}

// BeeperSample is one (level, duration) step of the speaker output,
// emitted whenever the beeper bit changes.
type BeeperSample struct {
	Level    float32
	Duration uint32
}

// ULA is the Spectrum's single custom chip: video timing, keyboard,
// border, and the speaker/tape I/O that share port 0xFE.
type ULA struct {
	Border       uint8
	SpeakerOut   bool
	Keyboard     [8]uint8 // bit clear = pressed
	EarIn        bool
	Scanline     int
	ScanlineTick int
	IntPending   bool
	FloatingBus  uint8

	BorderLog []BorderChange
	Beeper    []BeeperSample

	pendingSince uint32 // frame-tstate the current speaker level began at

	Log log.Logger
}

// New returns a ULA with the keyboard matrix in its released state.
func New(logger log.Logger) *ULA {
	u := &ULA{Log: logger}
	if u.Log == nil {
		u.Log = log.NewNullLogger()
	}
	u.ReleaseAll()
	return u
}

// ReleaseAll sets every keyboard row to "no keys pressed".
func (u *ULA) ReleaseAll() {
	for i := range u.Keyboard {
		u.Keyboard[i] = 0xFF
	}
}

// KeyDown marks (row, col) as pressed.
func (u *ULA) KeyDown(row, col uint8) {
	u.Keyboard[row] = bits.Reset(u.Keyboard[row], col)
	u.Log.Debugf("key down: row %d col %d", row, col)
}

// KeyUp marks (row, col) as released.
func (u *ULA) KeyUp(row, col uint8) {
	u.Keyboard[row] = bits.Set(u.Keyboard[row], col)
	u.Log.Debugf("key up: row %d col %d", row, col)
}

// frameTstate returns the current absolute position within the frame.
func (u *ULA) frameTstate() uint32 {
	return uint32(u.Scanline)*TStatesPerLine + uint32(u.ScanlineTick)
}

// ReadPort implements the port 0xFE read (spec.md §4.2): keyboard rows
// selected by the clear bits of the port's high byte, ANDed together,
// with bit 6 carrying the tape EAR input and bits 5/7 always set.
func (u *ULA) ReadPort(port uint16) uint8 {
	if port&1 != 0 {
		return u.FloatingBus
	}
	result := uint8(0xFF)
	hi := uint8(port >> 8)
	for row := 0; row < 8; row++ {
		if hi&(1<<row) == 0 {
			result &= u.Keyboard[row]
		}
	}
	if u.EarIn {
		result |= 1 << 6
	} else {
		result &^= 1 << 6
	}
	u.FloatingBus = result
	return result
}

// WritePort implements the port 0xFE write: border colour in bits 0-2,
// MIC/EAR ORed together into a single beeper level in bits 3-4.
func (u *ULA) WritePort(port uint16, val uint8) {
	if port&1 != 0 {
		return
	}
	border := val & 0x07
	if border != u.Border {
		u.Border = border
		frameTstate := u.frameTstate()
		u.BorderLog = append(u.BorderLog, BorderChange{FrameTstate: frameTstate, Colour: border})
		u.Log.Debugf("border change: tstate %d colour %d", frameTstate, border)
	}

	newSpeaker := val&0x08 != 0 || val&0x10 != 0
	if newSpeaker != u.SpeakerOut {
		u.flushBeeper()
		u.SpeakerOut = newSpeaker
	}
}

func (u *ULA) flushBeeper() {
	now := u.frameTstate()
	level := float32(0)
	if u.SpeakerOut {
		level = 1
	}
	u.Beeper = append(u.Beeper, BeeperSample{Level: level, Duration: now - u.pendingSince})
	u.pendingSince = now
}

// FlushFrame appends the final pending beeper interval for the frame
// that just ended, and returns the accumulated sample stream. It does
// not clear BorderLog or Beeper; the Frame Driver owns that reset.
func (u *ULA) FlushFrame() []BeeperSample {
	u.flushBeeper()
	return u.Beeper
}

// StartFrame resets the per-frame border log and beeper stream. Called
// once by the Frame Driver at the start of each frame.
func (u *ULA) StartFrame() {
	u.BorderLog = u.BorderLog[:0]
	u.Beeper = u.Beeper[:0]
	u.pendingSince = 0
}

// Tick advances the scanline position by cycles T-states, wrapping the
// scanline counter and raising the vertical-blank interrupt on 311->0.
func (u *ULA) Tick(cycles uint8) {
	u.ScanlineTick += int(cycles)
	for u.ScanlineTick >= TStatesPerLine {
		u.ScanlineTick -= TStatesPerLine
		u.Scanline++
		if u.Scanline >= ScanlinesPerFrame {
			u.Scanline = 0
			u.IntPending = true
		}
	}
}

// AcceptInterrupt clears the pending vertical-blank interrupt; called
// once the CPU has accepted it.
func (u *ULA) AcceptInterrupt() {
	u.IntPending = false
}

var _ types.Stater = (*ULA)(nil)

// Load restores ULA state from a snapshot buffer.
func (u *ULA) Load(s *types.State) {
	u.Border = s.Read8()
	u.SpeakerOut = s.ReadBool()
	for i := range u.Keyboard {
		u.Keyboard[i] = s.Read8()
	}
	u.EarIn = s.ReadBool()
	u.Scanline = int(s.Read16())
	u.ScanlineTick = int(s.Read16())
	u.IntPending = s.ReadBool()
	u.FloatingBus = s.Read8()
}

// Save writes ULA state to a snapshot buffer.
func (u *ULA) Save(s *types.State) {
	s.Write8(u.Border)
	s.WriteBool(u.SpeakerOut)
	for _, row := range u.Keyboard {
		s.Write8(row)
	}
	s.WriteBool(u.EarIn)
	s.Write16(uint16(u.Scanline))
	s.Write16(uint16(u.ScanlineTick))
	s.WriteBool(u.IntPending)
	s.Write8(u.FloatingBus)
}
