package monitor

import (
	"encoding/json"
	"testing"

	"github.com/speccygo/zx48/internal/cpu"
	"github.com/speccygo/zx48/internal/ula"
	"github.com/stretchr/testify/require"
)

func TestPublishQueuesEncodedFrame(t *testing.T) {
	m := New(nil)
	c := cpu.New()
	c.A = 0x42
	u := ula.New(nil)

	m.Publish(c, u)

	select {
	case data := <-m.broadcast:
		var f Frame
		require.NoError(t, json.Unmarshal(data, &f))
		require.Equal(t, uint8(0x42), f.A)
	default:
		t.Fatal("expected a queued frame")
	}
}

func TestPublishSkipsIdenticalConsecutiveFrames(t *testing.T) {
	m := New(nil)
	c := cpu.New()
	u := ula.New(nil)

	m.Publish(c, u)
	<-m.broadcast

	m.Publish(c, u)
	select {
	case <-m.broadcast:
		t.Fatal("expected the unchanged frame to be skipped")
	default:
	}
}

func TestPublishSendsAgainAfterChange(t *testing.T) {
	m := New(nil)
	c := cpu.New()
	u := ula.New(nil)

	m.Publish(c, u)
	<-m.broadcast

	c.A = 0x01
	m.Publish(c, u)
	select {
	case <-m.broadcast:
	default:
		t.Fatal("expected a new frame once state changed")
	}
}
