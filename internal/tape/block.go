// Package tape implements the pulse-level tape player: given an
// ordered sequence of already-parsed blocks (spec.md §3), it produces
// an edge-toggling EAR-input bit as a function of absolute T-state.
// Parsing tape files into these blocks is the job of tape/format; this
// package never reads a file.
package tape

// Block is the tagged union of tape block kinds the player understands.
// Exactly one of the concrete types below is stored per Block.
type Block interface {
	isBlock()
}

// StandardOrTurbo covers both the standard ROM-timing tape block and
// "turbo" blocks that vary pilot/sync/bit timing (TZX ID 0x10/0x11).
type StandardOrTurbo struct {
	Data               []byte
	PilotPulse         uint16
	Sync1, Sync2       uint16
	ZeroPulse          uint16
	OnePulse           uint16
	PilotCount         uint16
	PauseMs            uint16
	UsedBitsLastByte   uint8
}

func (StandardOrTurbo) isBlock() {}

// PureTone emits PulseCount toggles, each PulseLength T-states long.
type PureTone struct {
	PulseLength uint16
	PulseCount  uint16
}

func (PureTone) isBlock() {}

// PulseSequence emits one toggle per listed pulse length, in order.
type PulseSequence struct {
	Pulses []uint16
}

func (PulseSequence) isBlock() {}

// PureData runs the Data bit-encoding state machine with no pilot tone
// or sync pulses in front of it.
type PureData struct {
	Data             []byte
	ZeroPulse        uint16
	OnePulse         uint16
	UsedBitsLastByte uint8
	PauseMs          uint16
}

func (PureData) isBlock() {}

// DirectRecording samples one bit per TStatesPerSample T-states,
// MSB-first out of Data.
type DirectRecording struct {
	Data             []byte
	TStatesPerSample uint16
	UsedBitsLastByte uint8
	PauseMs          uint16
}

func (DirectRecording) isBlock() {}

// Pause holds the EAR line low for Ms milliseconds. Ms == 0 means
// "stop the tape" rather than a zero-length pause.
type Pause struct {
	Ms uint16
}

func (Pause) isBlock() {}

// LoopStart begins a loop body that LoopEnd will repeat Count-1 more
// times.
type LoopStart struct {
	Count uint16
}

func (LoopStart) isBlock() {}

// LoopEnd closes the most recently opened LoopStart.
type LoopEnd struct{}

func (LoopEnd) isBlock() {}

// Jump adds SignedOffset to the current block index.
type Jump struct {
	SignedOffset int16
}

func (Jump) isBlock() {}

// StopIf48K stops playback unconditionally (this core is always 48K).
type StopIf48K struct{}

func (StopIf48K) isBlock() {}

// Informational blocks carry no playback effect; they are skipped by
// the player but retained so tooling can display them.
type (
	Group       struct{ Name string }
	GroupEnd    struct{}
	Text        struct{ Text string }
	Message     struct{ Text string; DisplaySeconds uint8 }
	ArchiveInfo struct{ Text string }
	Hardware    struct{ Text string }
	Custom      struct{ ID string; Data []byte }
	Glue        struct{}
)

func (Group) isBlock()       {}
func (GroupEnd) isBlock()    {}
func (Text) isBlock()        {}
func (Message) isBlock()     {}
func (ArchiveInfo) isBlock() {}
func (Hardware) isBlock()    {}
func (Custom) isBlock()      {}
func (Glue) isBlock()        {}
