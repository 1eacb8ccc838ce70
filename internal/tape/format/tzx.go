package format

import (
	"encoding/binary"

	"github.com/hashicorp/go-multierror"

	"github.com/speccygo/zx48/internal/tape"
	"github.com/speccygo/zx48/internal/zxerr"
)

var tzxSignature = [8]byte{'Z', 'X', 'T', 'a', 'p', 'e', '!', 0x1A}

// ParseTZX decodes a .tzx archive. Unknown block IDs are accumulated as
// zxerr.UnsupportedBlockError in the returned error (via
// go-multierror) and parsing stops there, per spec.md §7: the playable
// prefix up to that point is still returned alongside the error.
func ParseTZX(raw []byte) ([]tape.Block, error) {
	if len(raw) < 10 || [8]byte(raw[:8]) != tzxSignature {
		return nil, zxerr.LoadError{Reason: "not a TZX file: bad signature"}
	}

	var blocks []tape.Block
	var errs *multierror.Error
	pos := 10 // 8-byte signature + major/minor version

	for pos < len(raw) {
		id := raw[pos]
		start := pos
		pos++

		block, consumed, ok := parseTZXBlock(id, raw[pos:])
		if !ok {
			errs = multierror.Append(errs, zxerr.UnsupportedBlockError{BlockID: id, Offset: start})
			return blocks, errs.ErrorOrNil()
		}
		if block != nil {
			blocks = append(blocks, block)
		}
		pos += consumed
	}

	return blocks, errs.ErrorOrNil()
}

// parseTZXBlock decodes a single block body (everything after the ID
// byte, already consumed by the caller). It returns the number of
// bytes of body consumed, and ok=false for an unrecognised ID.
func parseTZXBlock(id byte, body []byte) (tape.Block, int, bool) {
	switch id {
	case 0x10: // standard speed data
		pauseMs := binary.LittleEndian.Uint16(body)
		length := int(binary.LittleEndian.Uint16(body[2:]))
		data := body[4 : 4+length]
		pilotCount := uint16(dataPilotCount)
		if length > 0 && data[0] == 0x00 {
			pilotCount = headerPilotCount
		}
		return tape.StandardOrTurbo{
			Data:             data,
			PilotPulse:       standardPilotPulse,
			Sync1:            standardSync1,
			Sync2:            standardSync2,
			ZeroPulse:        standardZeroPulse,
			OnePulse:         standardOnePulse,
			PilotCount:       pilotCount,
			PauseMs:          pauseMs,
			UsedBitsLastByte: 8,
		}, 4 + length, true

	case 0x11: // turbo speed data
		pilotPulse := binary.LittleEndian.Uint16(body)
		sync1 := binary.LittleEndian.Uint16(body[2:])
		sync2 := binary.LittleEndian.Uint16(body[4:])
		zero := binary.LittleEndian.Uint16(body[6:])
		one := binary.LittleEndian.Uint16(body[8:])
		pilotCount := binary.LittleEndian.Uint16(body[10:])
		usedBits := body[12]
		pauseMs := binary.LittleEndian.Uint16(body[13:])
		length := int(body[15]) | int(body[16])<<8 | int(body[17])<<16
		data := body[18 : 18+length]
		return tape.StandardOrTurbo{
			Data:             data,
			PilotPulse:       pilotPulse,
			Sync1:            sync1,
			Sync2:            sync2,
			ZeroPulse:        zero,
			OnePulse:         one,
			PilotCount:       pilotCount,
			PauseMs:          pauseMs,
			UsedBitsLastByte: usedBits,
		}, 18 + length, true

	case 0x12: // pure tone
		pulseLength := binary.LittleEndian.Uint16(body)
		pulseCount := binary.LittleEndian.Uint16(body[2:])
		return tape.PureTone{PulseLength: pulseLength, PulseCount: pulseCount}, 4, true

	case 0x13: // pulse sequence
		count := int(body[0])
		pulses := make([]uint16, count)
		for i := 0; i < count; i++ {
			pulses[i] = binary.LittleEndian.Uint16(body[1+i*2:])
		}
		return tape.PulseSequence{Pulses: pulses}, 1 + count*2, true

	case 0x14: // pure data
		zero := binary.LittleEndian.Uint16(body)
		one := binary.LittleEndian.Uint16(body[2:])
		usedBits := body[4]
		pauseMs := binary.LittleEndian.Uint16(body[5:])
		length := int(body[7]) | int(body[8])<<8 | int(body[9])<<16
		data := body[10 : 10+length]
		return tape.PureData{Data: data, ZeroPulse: zero, OnePulse: one, UsedBitsLastByte: usedBits, PauseMs: pauseMs}, 10 + length, true

	case 0x15: // direct recording
		tStatesPerSample := binary.LittleEndian.Uint16(body)
		pauseMs := binary.LittleEndian.Uint16(body[2:])
		usedBits := body[4]
		length := int(body[5]) | int(body[6])<<8 | int(body[7])<<16
		data := body[8 : 8+length]
		return tape.DirectRecording{Data: data, TStatesPerSample: tStatesPerSample, UsedBitsLastByte: usedBits, PauseMs: pauseMs}, 8 + length, true

	case 0x20: // pause (silence) or stop the tape
		ms := binary.LittleEndian.Uint16(body)
		return tape.Pause{Ms: ms}, 2, true

	case 0x21: // group start
		length := int(body[0])
		return tape.Group{Name: string(body[1 : 1+length])}, 1 + length, true

	case 0x22: // group end
		return tape.GroupEnd{}, 0, true

	case 0x23: // jump to block
		offset := int16(binary.LittleEndian.Uint16(body))
		return tape.Jump{SignedOffset: offset}, 2, true

	case 0x24: // loop start
		count := binary.LittleEndian.Uint16(body)
		return tape.LoopStart{Count: count}, 2, true

	case 0x25: // loop end
		return tape.LoopEnd{}, 0, true

	case 0x2A: // stop the tape if in 48K mode
		return tape.StopIf48K{}, 4, true

	case 0x30: // text description
		length := int(body[0])
		return tape.Text{Text: string(body[1 : 1+length])}, 1 + length, true

	case 0x31: // message block
		seconds := body[0]
		length := int(body[1])
		return tape.Message{Text: string(body[2 : 2+length]), DisplaySeconds: seconds}, 2 + length, true

	case 0x32: // archive info
		length := int(binary.LittleEndian.Uint16(body))
		return tape.ArchiveInfo{Text: string(body[2 : 2+length])}, 2 + length, true

	case 0x33: // hardware type
		count := int(body[0])
		return tape.Hardware{}, 1 + count*3, true

	case 0x35: // custom info block
		idBytes := body[:10]
		length := int(binary.LittleEndian.Uint32(body[10:]))
		return tape.Custom{ID: string(idBytes), Data: body[14 : 14+length]}, 14 + length, true

	case 0x5A: // "glue" block joining two TZX files
		return tape.Glue{}, 9, true

	default:
		return nil, 0, false
	}
}
