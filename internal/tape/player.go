package tape

import "github.com/speccygo/zx48/internal/types"

// state is the TapePlayer's internal playback phase (spec.md §3).
type state uint8

const (
	stateIdle state = iota
	statePilot
	stateSync1
	stateSync2
	stateData
	statePureTone
	statePulseSequence
	stateDirectRecording
	statePause
)

type loopFrame struct {
	bodyStart int
	counter   uint16
}

// Player consumes an ordered sequence of already-parsed tape blocks
// and, given a monotonically increasing absolute T-state stream,
// produces the EAR-input bit that stream implies. It is driven
// entirely by Update; Play/Pause/Stop/Rewind only take effect on the
// next call to Update, matching the Frame Driver's per-call ownership
// model (spec.md §5).
type Player struct {
	blocks     []Block
	blockIndex int
	st         state

	playing     bool
	paused      bool
	pendingPlay bool

	earBit bool

	lastTstate     uint64
	nextEdgeTstate uint64

	pilotEdgesRemaining uint32
	toneEdgesRemaining  uint32
	seqIndex            int

	bytePos   int
	bitPos    int
	pulseHalf int

	sampleBitIndex int

	pauseRemaining int64

	loopStack []loopFrame
}

// New returns an idle tape player with no tape loaded.
func New() *Player {
	return &Player{}
}

// LoadTape replaces the tape contents. Playback stops until Play is called.
func (p *Player) LoadTape(blocks []Block) {
	p.blocks = blocks
	p.Stop()
}

// Play starts (or resumes from the beginning of) playback. The first
// block is entered on the next call to Update, anchored at whatever
// absolute T-state that call supplies.
func (p *Player) Play() {
	if len(p.blocks) == 0 {
		return
	}
	p.playing = true
	p.paused = false
	p.pendingPlay = true
	p.blockIndex = 0
	p.loopStack = p.loopStack[:0]
	p.earBit = false
}

// Pause suspends playback at the current position; EAR stays at
// whatever level it last held.
func (p *Player) Pause() { p.paused = true }

// Resume lifts a Pause.
func (p *Player) Resume() { p.paused = false }

// Stop halts playback and resets the cursor to the beginning.
func (p *Player) Stop() {
	p.playing = false
	p.paused = false
	p.pendingPlay = false
	p.blockIndex = 0
	p.st = stateIdle
	p.earBit = false
	p.loopStack = p.loopStack[:0]
}

// Rewind stops playback and returns the cursor to the first block,
// without discarding the loaded tape.
func (p *Player) Rewind() { p.Stop() }

// Playing reports whether the player is actively advancing (neither
// stopped nor paused).
func (p *Player) Playing() bool { return p.playing && !p.paused }

// EarBit returns the last bit produced, without advancing time.
func (p *Player) EarBit() bool { return p.earBit }

// Update advances playback to cpuTstates (an absolute, monotonically
// increasing T-state count) and returns the resulting EAR bit.
func (p *Player) Update(cpuTstates uint64) bool {
	if !p.playing {
		return p.earBit
	}
	if p.pendingPlay {
		p.pendingPlay = false
		p.lastTstate = cpuTstates
		p.startBlock(0, cpuTstates)
	}
	if p.paused {
		// Shift the schedule so paused time is not played on Resume.
		p.nextEdgeTstate += cpuTstates - p.lastTstate
		p.lastTstate = cpuTstates
		return p.earBit
	}

	elapsed := cpuTstates - p.lastTstate
	p.lastTstate = cpuTstates

	if !p.playing || p.blockIndex >= len(p.blocks) {
		return p.earBit
	}

	if p.st == statePause {
		p.pauseRemaining -= int64(elapsed)
		p.earBit = false
		if p.pauseRemaining <= 0 {
			p.startBlock(p.blockIndex+1, cpuTstates)
		}
		return p.earBit
	}

	for p.playing && p.blockIndex < len(p.blocks) && p.st != statePause && cpuTstates >= p.nextEdgeTstate {
		edgeTime := p.nextEdgeTstate
		if p.st == stateDirectRecording {
			p.earBit = p.currentDirectBit()
			p.advanceDirectSample(edgeTime)
		} else {
			p.earBit = !p.earBit
			p.transition(edgeTime)
		}
	}
	return p.earBit
}

// startBlock walks forward from index, skipping control/informational
// blocks, until it either lands on a pulse-producing block, enters a
// Pause, or runs off the end of the tape (which stops playback).
func (p *Player) startBlock(index int, anchor uint64) {
	for {
		if index < 0 || index >= len(p.blocks) {
			p.blockIndex = index
			p.playing = false
			return
		}
		switch b := p.blocks[index].(type) {
		case LoopStart:
			p.loopStack = append(p.loopStack, loopFrame{bodyStart: index + 1, counter: b.Count})
			index++
		case LoopEnd:
			if len(p.loopStack) == 0 {
				index++
				continue
			}
			top := &p.loopStack[len(p.loopStack)-1]
			top.counter--
			if top.counter > 0 {
				index = top.bodyStart
			} else {
				p.loopStack = p.loopStack[:len(p.loopStack)-1]
				index++
			}
		case Jump:
			index += int(b.SignedOffset)
		case StopIf48K:
			p.blockIndex = index
			p.playing = false
			return
		case Pause:
			p.blockIndex = index
			if b.Ms == 0 {
				p.playing = false
				return
			}
			p.st = statePause
			p.pauseRemaining = int64(b.Ms) * 3500
			p.earBit = false
			return
		case StandardOrTurbo:
			if len(b.Data) == 0 {
				p.blockIndex = index
				p.playing = false
				return
			}
			p.blockIndex = index
			p.st = statePilot
			p.pilotEdgesRemaining = uint32(b.PilotCount) * 2
			p.nextEdgeTstate = anchor + uint64(b.PilotPulse)
			return
		case PureTone:
			if b.PulseCount == 0 {
				index++
				continue
			}
			p.blockIndex = index
			p.st = statePureTone
			p.toneEdgesRemaining = uint32(b.PulseCount)
			p.nextEdgeTstate = anchor + uint64(b.PulseLength)
			return
		case PulseSequence:
			if len(b.Pulses) == 0 {
				index++
				continue
			}
			p.blockIndex = index
			p.st = statePulseSequence
			p.seqIndex = 0
			p.nextEdgeTstate = anchor + uint64(b.Pulses[0])
			return
		case PureData:
			if len(b.Data) == 0 {
				p.blockIndex = index
				p.playing = false
				return
			}
			p.blockIndex = index
			p.st = stateData
			p.bytePos, p.bitPos, p.pulseHalf = 0, 0, 0
			p.nextEdgeTstate = anchor + bitPulse(b.Data, 0, 0, b.ZeroPulse, b.OnePulse)
			return
		case DirectRecording:
			if len(b.Data) == 0 {
				p.blockIndex = index
				p.playing = false
				return
			}
			p.blockIndex = index
			p.st = stateDirectRecording
			p.sampleBitIndex = 0
			p.nextEdgeTstate = anchor + uint64(b.TStatesPerSample)
			return
		default:
			// informational block: Group, GroupEnd, Text, Message,
			// ArchiveInfo, Hardware, Custom, Glue - no playback effect.
			index++
		}
	}
}

// transition handles the edge just emitted (everything except
// DirectRecording, which Update special-cases since it sets the EAR
// level directly from the sample byte rather than toggling it).
func (p *Player) transition(edgeTime uint64) {
	switch p.st {
	case statePilot:
		blk := p.blocks[p.blockIndex].(StandardOrTurbo)
		p.pilotEdgesRemaining--
		if p.pilotEdgesRemaining == 0 {
			p.st = stateSync1
			p.nextEdgeTstate = edgeTime + uint64(blk.Sync1)
		} else {
			p.nextEdgeTstate = edgeTime + uint64(blk.PilotPulse)
		}
	case stateSync1:
		blk := p.blocks[p.blockIndex].(StandardOrTurbo)
		p.st = stateSync2
		p.nextEdgeTstate = edgeTime + uint64(blk.Sync2)
	case stateSync2:
		blk := p.blocks[p.blockIndex].(StandardOrTurbo)
		p.st = stateData
		p.bytePos, p.bitPos, p.pulseHalf = 0, 0, 0
		if len(blk.Data) == 0 {
			p.playing = false
			return
		}
		p.nextEdgeTstate = edgeTime + bitPulse(blk.Data, 0, 0, blk.ZeroPulse, blk.OnePulse)
	case stateData:
		p.advanceDataBit(edgeTime)
	case statePureTone:
		blk := p.blocks[p.blockIndex].(PureTone)
		p.toneEdgesRemaining--
		if p.toneEdgesRemaining == 0 {
			p.postBlock(edgeTime, 0)
		} else {
			p.nextEdgeTstate = edgeTime + uint64(blk.PulseLength)
		}
	case statePulseSequence:
		blk := p.blocks[p.blockIndex].(PulseSequence)
		p.seqIndex++
		if p.seqIndex >= len(blk.Pulses) {
			p.postBlock(edgeTime, 0)
		} else {
			p.nextEdgeTstate = edgeTime + uint64(blk.Pulses[p.seqIndex])
		}
	}
}

// dataParams returns the byte stream and bit encoding for whichever
// block kind is currently driving the Data state (StandardOrTurbo's
// tail, or a standalone PureData block).
func (p *Player) dataParams() (data []byte, zero, one uint16, usedBits uint8, pauseMs uint16) {
	switch b := p.blocks[p.blockIndex].(type) {
	case StandardOrTurbo:
		return b.Data, b.ZeroPulse, b.OnePulse, b.UsedBitsLastByte, b.PauseMs
	case PureData:
		return b.Data, b.ZeroPulse, b.OnePulse, b.UsedBitsLastByte, b.PauseMs
	}
	return nil, 0, 0, 0, 0
}

func (p *Player) advanceDataBit(edgeTime uint64) {
	data, zero, one, usedBits, pauseMs := p.dataParams()

	p.pulseHalf++
	if p.pulseHalf < 2 {
		p.nextEdgeTstate = edgeTime + bitPulse(data, p.bytePos, p.bitPos, zero, one)
		return
	}
	p.pulseHalf = 0
	p.bitPos++

	lastIdx := len(data) - 1
	eff := effectiveUsedBits(usedBits)
	if p.bitPos >= 8 || (p.bytePos == lastIdx && p.bitPos >= int(eff)) {
		p.bitPos = 0
		p.bytePos++
	}
	if p.bytePos > lastIdx {
		p.postBlock(edgeTime, pauseMs)
		return
	}
	p.nextEdgeTstate = edgeTime + bitPulse(data, p.bytePos, p.bitPos, zero, one)
}

func (p *Player) currentDirectBit() bool {
	blk := p.blocks[p.blockIndex].(DirectRecording)
	byteIdx := p.sampleBitIndex / 8
	bitIdx := p.sampleBitIndex % 8
	if byteIdx >= len(blk.Data) {
		return false
	}
	return (blk.Data[byteIdx]>>(7-bitIdx))&1 == 1
}

func (p *Player) advanceDirectSample(edgeTime uint64) {
	blk := p.blocks[p.blockIndex].(DirectRecording)
	p.sampleBitIndex++
	totalBits := (len(blk.Data)-1)*8 + int(effectiveUsedBits(blk.UsedBitsLastByte))
	if p.sampleBitIndex >= totalBits {
		p.postBlock(edgeTime, blk.PauseMs)
		return
	}
	p.nextEdgeTstate = edgeTime + uint64(blk.TStatesPerSample)
}

func (p *Player) postBlock(edgeTime uint64, pauseMs uint16) {
	if pauseMs > 0 {
		p.st = statePause
		p.pauseRemaining = int64(pauseMs) * 3500
		p.earBit = false
		return
	}
	p.startBlock(p.blockIndex+1, edgeTime)
}

func effectiveUsedBits(u uint8) uint8 {
	if u == 0 {
		return 8
	}
	return u
}

func bitPulse(data []byte, bytePos, bitPos int, zero, one uint16) uint64 {
	bit := (data[bytePos] >> (7 - bitPos)) & 1
	if bit == 1 {
		return uint64(one)
	}
	return uint64(zero)
}

var _ types.Stater = (*Player)(nil)

// Load restores player state from a snapshot. The tape's block list
// itself is not part of the snapshot; the caller must LoadTape() the
// same tape before calling this.
func (p *Player) Load(s *types.State) {
	p.blockIndex = int(s.Read32())
	p.st = state(s.Read8())
	p.playing = s.ReadBool()
	p.paused = s.ReadBool()
	p.earBit = s.ReadBool()
	p.lastTstate = s.Read64()
	p.nextEdgeTstate = s.Read64()
	p.pilotEdgesRemaining = s.Read32()
	p.toneEdgesRemaining = s.Read32()
	p.seqIndex = int(s.Read32())
	p.bytePos = int(s.Read32())
	p.bitPos = int(s.Read32())
	p.pulseHalf = int(s.Read32())
	p.sampleBitIndex = int(s.Read32())
	p.pauseRemaining = int64(s.Read64())
	n := s.Read32()
	p.loopStack = make([]loopFrame, n)
	for i := range p.loopStack {
		p.loopStack[i] = loopFrame{bodyStart: int(s.Read32()), counter: s.Read16()}
	}
}

func (p *Player) Save(s *types.State) {
	s.Write32(uint32(p.blockIndex))
	s.Write8(uint8(p.st))
	s.WriteBool(p.playing)
	s.WriteBool(p.paused)
	s.WriteBool(p.earBit)
	s.Write64(p.lastTstate)
	s.Write64(p.nextEdgeTstate)
	s.Write32(p.pilotEdgesRemaining)
	s.Write32(p.toneEdgesRemaining)
	s.Write32(uint32(p.seqIndex))
	s.Write32(uint32(p.bytePos))
	s.Write32(uint32(p.bitPos))
	s.Write32(uint32(p.pulseHalf))
	s.Write32(uint32(p.sampleBitIndex))
	s.Write64(uint64(p.pauseRemaining))
	s.Write32(uint32(len(p.loopStack)))
	for _, f := range p.loopStack {
		s.Write32(uint32(f.bodyStart))
		s.Write16(f.counter)
	}
}
