// Package format parses the two common ZX Spectrum tape wire formats,
// TAP and TZX, into the []tape.Block sequence the player understands.
// Parsing is a pure function over a byte slice; nothing here touches
// the filesystem or any machine state.
package format

import (
	"encoding/binary"

	"github.com/speccygo/zx48/internal/tape"
	"github.com/speccygo/zx48/internal/zxerr"
)

// Standard ROM-loader pulse timings, in T-states, used by every TAP
// block and by TZX's ID-0x10 "standard speed data" block.
const (
	standardPilotPulse = 2168
	standardSync1      = 667
	standardSync2      = 735
	standardZeroPulse  = 855
	standardOnePulse   = 1710
	headerPilotCount   = 8063
	dataPilotCount     = 3223
)

// ParseTAP decodes a plain .tap file: a flat sequence of
// length-prefixed blocks, each played back at standard ROM timing with
// a pilot tone whose length depends on the flag byte (0x00 = header,
// anything else = data, per the convention every ROM-compatible loader
// follows).
func ParseTAP(raw []byte) ([]tape.Block, error) {
	var blocks []tape.Block
	pos := 0
	for pos+2 <= len(raw) {
		length := int(binary.LittleEndian.Uint16(raw[pos:]))
		pos += 2
		if pos+length > len(raw) {
			return blocks, zxerr.LoadError{Reason: "TAP block length runs past end of file"}
		}
		data := raw[pos : pos+length]
		pos += length

		pilotCount := uint16(dataPilotCount)
		if length > 0 && data[0] == 0x00 {
			pilotCount = headerPilotCount
		}
		blocks = append(blocks, tape.StandardOrTurbo{
			Data:             data,
			PilotPulse:       standardPilotPulse,
			Sync1:            standardSync1,
			Sync2:            standardSync2,
			ZeroPulse:        standardZeroPulse,
			OnePulse:         standardOnePulse,
			PilotCount:       pilotCount,
			PauseMs:          1000,
			UsedBitsLastByte: 8,
		})
	}
	return blocks, nil
}
