package tape

import "testing"

func TestPlayerIdleHoldsLastBit(t *testing.T) {
	p := New()
	if p.Update(1000) != false {
		t.Fatalf("idle player should report false EAR bit")
	}
}

func TestPlayerPilotToneSync1Timing(t *testing.T) {
	p := New()
	p.LoadTape([]Block{
		StandardOrTurbo{
			Data:       []byte{0xFF},
			PilotPulse: 2168,
			Sync1:      667,
			Sync2:      735,
			ZeroPulse:  855,
			OnePulse:   1710,
			PilotCount: 8063,
		},
	})
	p.Play()

	const pilotEdges = uint64(8063) * 2
	start := uint64(0)
	p.Update(start)

	// Drive every pilot edge in turn; after the final one the player
	// should have moved into Sync1 with its next edge 667 T-states later.
	tstate := start
	for i := uint64(0); i < pilotEdges; i++ {
		tstate += 2168
		p.Update(tstate)
	}
	if p.st != stateSync1 {
		t.Fatalf("expected stateSync1 after pilot tone, got %v", p.st)
	}
	want := tstate + 667
	if p.nextEdgeTstate != want {
		t.Fatalf("expected next edge at %d, got %d", want, p.nextEdgeTstate)
	}
}

func TestPlayerPauseBlockStopsOnZero(t *testing.T) {
	p := New()
	p.LoadTape([]Block{Pause{Ms: 0}})
	p.Play()
	p.Update(0)
	if p.Playing() {
		t.Fatalf("zero-length pause block should stop the tape")
	}
}

func TestPlayerPauseBlockHoldsEarLow(t *testing.T) {
	p := New()
	p.LoadTape([]Block{
		PureTone{PulseLength: 100, PulseCount: 2},
		Pause{Ms: 10},
	})
	p.Play()
	p.Update(0)
	p.Update(100)
	p.Update(200)
	if p.st != statePause {
		t.Fatalf("expected to enter Pause state, got %v", p.st)
	}
	if p.Update(201) != false {
		t.Fatalf("EAR must be held low during a Pause block")
	}
}

func TestPlayerLoopRepeatsBody(t *testing.T) {
	p := New()
	p.LoadTape([]Block{
		LoopStart{Count: 3},
		PulseSequence{Pulses: []uint16{100}},
		LoopEnd{},
		Pause{Ms: 0},
	})
	p.Play()
	p.Update(0)

	visits := 0
	if p.blockIndex == 1 {
		visits++ // first pass through the body, entered by Update(0)
	}
	tstate := uint64(0)
	for i := 0; i < 20 && p.Playing(); i++ {
		tstate += 100
		p.Update(tstate)
		if p.blockIndex == 1 {
			visits++
		}
	}
	if visits < 3 {
		t.Fatalf("expected the loop body to be visited at least 3 times, got %d", visits)
	}
}

func TestPlayerDirectRecordingSamplesBits(t *testing.T) {
	p := New()
	p.LoadTape([]Block{
		DirectRecording{
			Data:             []byte{0x80}, // MSB set, rest clear
			TStatesPerSample: 79,
			UsedBitsLastByte: 8,
		},
	})
	p.Play()
	p.Update(0)
	if got := p.Update(79); got != true {
		t.Fatalf("first sample bit should be 1 (MSB of 0x80), got %v", got)
	}
	if got := p.Update(158); got != false {
		t.Fatalf("second sample bit should be 0, got %v", got)
	}
}

func TestPlayerStandardBlockMalformedStopsPlayback(t *testing.T) {
	p := New()
	p.LoadTape([]Block{StandardOrTurbo{Data: nil, PilotPulse: 2168, PilotCount: 1}})
	p.Play()
	p.Update(0)
	if p.Playing() {
		t.Fatalf("a block with no data should stop playback rather than hang")
	}
}
